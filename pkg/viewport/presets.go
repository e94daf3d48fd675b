package viewport

// Per-chart bounds.
var (
	// Square600 fits square charts up to 600px.
	Square600 = Bounds{Square: true, MaxW: 600, Padding: 40, Fallback: Size{W: 600, H: 600}}

	// Square500 fits square charts up to 500px.
	Square500 = Bounds{Square: true, MaxW: 500, Padding: 40, Fallback: Size{W: 500, H: 500}}

	// Wide is at least 600px wide with a 4:3 height capped at 600px.
	Wide = Bounds{MinW: 600, Aspect: 0.75, MaxH: 600, Padding: 40, Fallback: Size{W: 800, H: 600}}

	// HalfDisc is at least 600px wide with a 2:1 height capped at 400px.
	HalfDisc = Bounds{MinW: 600, Aspect: 0.5, MaxH: 400, Padding: 40, Fallback: Size{W: 800, H: 400}}

	// Panel is at least 800px wide and 400px tall.
	Panel = Bounds{MinW: 800, MinH: 400, MaxH: 400, Padding: 48, Fallback: Size{W: 800, H: 400}}

	// Spark is the fixed sparkline box.
	Spark = Bounds{MinW: 60, MaxW: 60, MinH: 20, MaxH: 20, Fallback: Size{W: 60, H: 20}}
)
