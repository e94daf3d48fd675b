package mock

import (
	"strconv"

	"github.com/matzehuels/cryptoviz/pkg/market"
)

func at(dx, dy float64) *market.Offset { return &market.Offset{DX: dx, DY: dy} }

// Allocation is the portfolio split across assets.
func Allocation() []market.Slice {
	return []market.Slice{
		{Name: "Bitcoin.Neural", Value: 45.2, Connections: []int{1, 2}},
		{Name: "Ethereum.AI", Value: 17.3, Connections: []int{0, 2, 3}},
		{Name: "Solana.Quantum", Value: 9.1, Connections: []int{0, 1, 4}},
		{Name: "Cardano.Core", Value: 5.7, Connections: []int{1, 4}},
		{Name: "Others.Net", Value: 22.7, Connections: []int{2, 3}},
	}
}

// Performance is the quarterly performance split.
func Performance() []market.Slice {
	return []market.Slice{
		{Name: "Q1.2024.AI", Value: 28.5, Connections: []int{1, 2}},
		{Name: "Q2.2024.NEURAL", Value: 32.1, Connections: []int{0, 2, 3}},
		{Name: "Q3.2024.QUANTUM", Value: 24.8, Connections: []int{0, 1, 3}},
		{Name: "Q4.2024.CYBER", Value: 14.6, Connections: []int{1, 2}},
	}
}

// Assets is the ranked market list. Score is on a 0–100 scale.
func Assets() []market.Asset {
	return []market.Asset{
		{Symbol: "CLND", Name: "Colend", Score: 84, Change: -0.17, Volume: "1.2M", History: []float64{1, 1.2, 0.8, 1.5, 1.1, 0.9, 1.3}},
		{Symbol: "BOOP", Name: "Boop", Score: 79, Change: 4.01, Volume: "890K", History: []float64{0.8, 1.1, 1.4, 1.2, 1.6, 1.3, 1.5}},
		{Symbol: "H1", Name: "Haven1", Score: 67, Change: -0.08, Volume: "3.4M", History: []float64{1.2, 1.0, 0.9, 1.1, 0.8, 0.95, 1.0}},
		{Symbol: "CNDL", Name: "CandleTV", Score: 91, Change: 12.45, Volume: "567K", History: []float64{0.7, 0.9, 1.1, 1.3, 1.5, 1.2, 1.4}},
		{Symbol: "STOKERO", Name: "Tokero", Score: 72, Change: 2.20, Volume: "2.1M", History: []float64{0.9, 1.1, 1.0, 1.3, 1.2, 1.4, 1.3}},
		{Symbol: "BTC", Name: "Bitcoin", Score: 98, Change: 1.50, Volume: "21.3B", History: []float64{0.95, 1.0, 1.05, 1.02, 1.08, 1.12, 1.15}},
		{Symbol: "ETH", Name: "Ethereum", Score: 92, Change: 2.17, Volume: "9.20B", History: []float64{0.92, 0.98, 1.02, 1.05, 1.08, 1.06, 1.12}},
		{Symbol: "USDT", Name: "Tether", Score: 81, Change: 0.01, Volume: "36.20B", History: []float64{1.0, 1.0, 0.999, 1.001, 1.0, 0.999, 1.0}},
		{Symbol: "BNB", Name: "Binance Coin", Score: 85, Change: -0.91, Volume: "1.36B", History: []float64{1.05, 1.02, 0.98, 0.95, 0.92, 0.94, 0.96}},
	}
}

// AssetBySymbol finds an asset in Assets.
func AssetBySymbol(symbol string) (market.Asset, bool) {
	for _, a := range Assets() {
		if a.Symbol == symbol {
			return a, true
		}
	}
	return market.Asset{}, false
}

// Ecosystem is the asset correlation network. Offsets are pixels at an
// 800×600 canvas.
func Ecosystem() market.Network {
	return market.Network{
		Nodes: []market.Node{
			{ID: "btc", Label: "Bitcoin", Weight: 100, Category: "crypto", Color: "#f7931a", Offset: at(0, 0)},
			{ID: "eth", Label: "Ethereum", Weight: 80, Category: "crypto", Color: "#627eea", Offset: at(-150, -100)},
			{ID: "bnb", Label: "Binance", Weight: 70, Category: "exchange", Color: "#f3ba2f", Offset: at(150, -100)},
			{ID: "sol", Label: "Solana", Weight: 60, Category: "crypto", Color: "#9945ff", Offset: at(150, 100)},
			{ID: "ada", Label: "Cardano", Weight: 50, Category: "crypto", Color: "#0033ad", Offset: at(-150, 100)},
			{ID: "dot", Label: "Polkadot", Weight: 40, Category: "crypto", Color: "#e6007a", Offset: at(-250, 0)},
			{ID: "avax", Label: "Avalanche", Weight: 35, Category: "crypto", Color: "#e84142", Offset: at(0, -180)},
			{ID: "matic", Label: "Polygon", Weight: 30, Category: "crypto", Color: "#8247e5", Offset: at(250, 0)},
			{ID: "link", Label: "Chainlink", Weight: 25, Category: "defi", Color: "#375bd2", Offset: at(0, 180)},
			{ID: "uni", Label: "Uniswap", Weight: 20, Category: "defi", Color: "#ff007a", Offset: at(-200, -150)},
			{ID: "aave", Label: "Aave", Weight: 18, Category: "defi", Color: "#b6509e", Offset: at(200, -150)},
			{ID: "comp", Label: "Compound", Weight: 15, Category: "defi", Color: "#00d395", Offset: at(200, 150)},
			{ID: "mkr", Label: "Maker", Weight: 12, Category: "defi", Color: "#1aab9b", Offset: at(-200, 150)},
		},
		Edges: []market.Edge{
			{Source: "btc", Target: "eth", Strength: 0.9, Color: "#00ff88"},
			{Source: "btc", Target: "bnb", Strength: 0.8, Color: "#00ff88"},
			{Source: "btc", Target: "sol", Strength: 0.7, Color: "#00ff88"},
			{Source: "btc", Target: "ada", Strength: 0.6, Color: "#00ff88"},
			{Source: "eth", Target: "uni", Strength: 0.8, Color: "#00aaff"},
			{Source: "eth", Target: "aave", Strength: 0.7, Color: "#00aaff"},
			{Source: "eth", Target: "comp", Strength: 0.6, Color: "#00aaff"},
			{Source: "eth", Target: "mkr", Strength: 0.5, Color: "#00aaff"},
			{Source: "sol", Target: "avax", Strength: 0.5, Color: "#ff6600"},
			{Source: "ada", Target: "dot", Strength: 0.4, Color: "#ff6600"},
			{Source: "matic", Target: "link", Strength: 0.6, Color: "#ff6600"},
			{Source: "uni", Target: "aave", Strength: 0.3, Color: "#ff0088"},
			{Source: "aave", Target: "comp", Strength: 0.4, Color: "#ff0088"},
			{Source: "comp", Target: "mkr", Strength: 0.3, Color: "#ff0088"},
		},
	}
}

// Cyber is the AI-core network with data-flow edges. Offsets are pixels at
// an 800×600 canvas.
func Cyber() market.Network {
	return market.Network{
		Nodes: []market.Node{
			{ID: "ai-core", Label: "AI CORE", Weight: 100, Category: "core", Level: 10, Color: "#00ffff", Offset: at(0, 0)},
			{ID: "btc-neural", Label: "BTC.NEURAL", Weight: 90, Category: "primary", Level: 9, Color: "#ff6600", Offset: at(-180, -120)},
			{ID: "eth-neural", Label: "ETH.NEURAL", Weight: 85, Category: "primary", Level: 8, Color: "#8000ff", Offset: at(180, -120)},
			{ID: "sol-neural", Label: "SOL.NEURAL", Weight: 75, Category: "primary", Level: 7, Color: "#ff00ff", Offset: at(180, 120)},
			{ID: "ada-neural", Label: "ADA.NEURAL", Weight: 70, Category: "primary", Level: 6, Color: "#00ff88", Offset: at(-180, 120)},
			{ID: "quantum-1", Label: "QUANTUM.1", Weight: 60, Category: "secondary", Level: 5, Color: "#ffff00", Offset: at(-280, 0)},
			{ID: "quantum-2", Label: "QUANTUM.2", Weight: 55, Category: "secondary", Level: 4, Color: "#ff0088", Offset: at(0, -200)},
			{ID: "quantum-3", Label: "QUANTUM.3", Weight: 50, Category: "secondary", Level: 3, Color: "#88ff00", Offset: at(280, 0)},
			{ID: "quantum-4", Label: "QUANTUM.4", Weight: 45, Category: "secondary", Level: 2, Color: "#0088ff", Offset: at(0, 200)},
			{ID: "data-1", Label: "DATA.STREAM.1", Weight: 30, Category: "satellite", Level: 1, Color: "#ff4400", Offset: at(-220, -180)},
			{ID: "data-2", Label: "DATA.STREAM.2", Weight: 25, Category: "satellite", Level: 1, Color: "#4400ff", Offset: at(220, -180)},
			{ID: "data-3", Label: "DATA.STREAM.3", Weight: 20, Category: "satellite", Level: 1, Color: "#44ff00", Offset: at(220, 180)},
			{ID: "data-4", Label: "DATA.STREAM.4", Weight: 15, Category: "satellite", Level: 1, Color: "#ff0044", Offset: at(-220, 180)},
		},
		Edges: []market.Edge{
			{Source: "ai-core", Target: "btc-neural", Strength: 0.95, Flow: 90, Color: "#00ffff"},
			{Source: "ai-core", Target: "eth-neural", Strength: 0.90, Flow: 85, Color: "#00ffff"},
			{Source: "ai-core", Target: "sol-neural", Strength: 0.85, Flow: 80, Color: "#00ffff"},
			{Source: "ai-core", Target: "ada-neural", Strength: 0.80, Flow: 75, Color: "#00ffff"},
			{Source: "btc-neural", Target: "quantum-1", Strength: 0.75, Flow: 70, Color: "#ff6600"},
			{Source: "eth-neural", Target: "quantum-2", Strength: 0.70, Flow: 65, Color: "#8000ff"},
			{Source: "sol-neural", Target: "quantum-3", Strength: 0.65, Flow: 60, Color: "#ff00ff"},
			{Source: "ada-neural", Target: "quantum-4", Strength: 0.60, Flow: 55, Color: "#00ff88"},
			{Source: "quantum-1", Target: "data-1", Strength: 0.50, Flow: 40, Color: "#ffff00"},
			{Source: "quantum-2", Target: "data-2", Strength: 0.45, Flow: 35, Color: "#ff0088"},
			{Source: "quantum-3", Target: "data-3", Strength: 0.40, Flow: 30, Color: "#88ff00"},
			{Source: "quantum-4", Target: "data-4", Strength: 0.35, Flow: 25, Color: "#0088ff"},
			{Source: "btc-neural", Target: "eth-neural", Strength: 0.30, Flow: 20, Color: "#ffffff"},
			{Source: "sol-neural", Target: "ada-neural", Strength: 0.25, Flow: 15, Color: "#ffffff"},
		},
	}
}

// HalfEye is the half-disc neural network. Offsets are fractions of the
// disc radius measured from the center of the bottom edge.
func HalfEye() market.Network {
	return market.Network{
		Nodes: []market.Node{
			{ID: "neural-core", Label: "NEURAL.CORE", Weight: 100, Category: "core", Level: 10, Offset: at(0, -0.2)},
			{ID: "btc-node", Label: "BTC.NEURAL", Weight: 95, Category: "primary", Level: 9, Offset: at(-0.4, -0.6)},
			{ID: "eth-node", Label: "ETH.NEURAL", Weight: 90, Category: "primary", Level: 8, Offset: at(0, -0.7)},
			{ID: "sol-node", Label: "SOL.NEURAL", Weight: 85, Category: "primary", Level: 7, Offset: at(0.4, -0.6)},
			{ID: "ada-node", Label: "ADA.NEURAL", Weight: 75, Category: "secondary", Level: 6, Offset: at(-0.7, -0.4)},
			{ID: "dot-node", Label: "DOT.NEURAL", Weight: 70, Category: "secondary", Level: 5, Offset: at(-0.3, -0.8)},
			{ID: "avax-node", Label: "AVAX.NEURAL", Weight: 65, Category: "secondary", Level: 4, Offset: at(0.3, -0.8)},
			{ID: "matic-node", Label: "MATIC.NEURAL", Weight: 60, Category: "secondary", Level: 3, Offset: at(0.7, -0.4)},
			{ID: "link-node", Label: "LINK.NEURAL", Weight: 50, Category: "peripheral", Level: 2, Offset: at(-0.9, -0.2)},
			{ID: "uni-node", Label: "UNI.NEURAL", Weight: 45, Category: "peripheral", Level: 1, Offset: at(-0.8, -0.7)},
			{ID: "aave-node", Label: "AAVE.NEURAL", Weight: 40, Category: "peripheral", Level: 1, Offset: at(0, -0.95)},
			{ID: "comp-node", Label: "COMP.NEURAL", Weight: 35, Category: "peripheral", Level: 1, Offset: at(0.8, -0.7)},
			{ID: "mkr-node", Label: "MKR.NEURAL", Weight: 30, Category: "peripheral", Level: 1, Offset: at(0.9, -0.2)},
		},
		Edges: []market.Edge{
			{Source: "neural-core", Target: "btc-node", Strength: 0.95, Flow: 90},
			{Source: "neural-core", Target: "eth-node", Strength: 0.90, Flow: 85},
			{Source: "neural-core", Target: "sol-node", Strength: 0.85, Flow: 80},
			{Source: "btc-node", Target: "ada-node", Strength: 0.75, Flow: 70},
			{Source: "btc-node", Target: "dot-node", Strength: 0.70, Flow: 65},
			{Source: "eth-node", Target: "dot-node", Strength: 0.80, Flow: 75},
			{Source: "eth-node", Target: "avax-node", Strength: 0.75, Flow: 70},
			{Source: "sol-node", Target: "avax-node", Strength: 0.70, Flow: 65},
			{Source: "sol-node", Target: "matic-node", Strength: 0.65, Flow: 60},
			{Source: "ada-node", Target: "link-node", Strength: 0.60, Flow: 50},
			{Source: "dot-node", Target: "uni-node", Strength: 0.55, Flow: 45},
			{Source: "avax-node", Target: "aave-node", Strength: 0.50, Flow: 40},
			{Source: "avax-node", Target: "comp-node", Strength: 0.45, Flow: 35},
			{Source: "matic-node", Target: "comp-node", Strength: 0.50, Flow: 40},
			{Source: "matic-node", Target: "mkr-node", Strength: 0.40, Flow: 30},
		},
	}
}

// SliceNetwork turns allocation slices into a network whose edges follow
// the slice connections. Out-of-range connection indices produce edges to
// unknown IDs, which the layout drops.
func SliceNetwork(slices []market.Slice) market.Network {
	n := market.Network{Nodes: make([]market.Node, len(slices))}
	for i, s := range slices {
		n.Nodes[i] = market.Node{ID: sliceID(i), Label: s.Name, Weight: s.Value}
	}
	for i, s := range slices {
		for _, j := range s.Connections {
			if j <= i && j >= 0 && j < len(slices) {
				continue // listed from both ends; keep one edge
			}
			n.Edges = append(n.Edges, market.Edge{Source: sliceID(i), Target: sliceID(j), Strength: 0.5})
		}
	}
	return n
}

func sliceID(i int) string { return "slice-" + strconv.Itoa(i) }
