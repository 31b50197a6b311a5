package fgpt

// lexicon holds word polarities in [-1, +1], tuned for market headlines.
var lexicon = map[string]float64{
	// positive
	"good":         0.7,
	"great":        0.8,
	"excellent":    1.0,
	"best":         1.0,
	"better":       0.5,
	"strong":       0.43,
	"stronger":     0.5,
	"positive":     0.23,
	"optimistic":   0.5,
	"bullish":      0.6,
	"gain":         0.4,
	"rise":         0.3,
	"rally":        0.5,
	"surge":        0.5,
	"soar":         0.6,
	"jump":         0.3,
	"climb":        0.3,
	"record":       0.3,
	"beat":         0.4,
	"boost":        0.4,
	"growth":       0.4,
	"grow":         0.3,
	"profit":       0.4,
	"profitable":   0.5,
	"upgrade":      0.5,
	"outperform":   0.5,
	"win":          0.6,
	"success":      0.6,
	"successful":   0.75,
	"breakthrough": 0.6,
	"innovative":   0.5,
	"impressive":   0.8,
	"robust":       0.4,
	"solid":        0.3,
	"recover":      0.3,
	"recovery":     0.3,
	"buy":          0.2,
	"happy":        0.8,
	"love":         0.5,
	"amazing":      0.6,
	"healthy":      0.5,
	"high":         0.16,
	"expand":       0.3,
	"dividend":     0.2,
	"approval":     0.4,
	"approve":      0.4,
	// negative
	"bad":           -0.7,
	"poor":          -0.4,
	"worst":         -1.0,
	"worse":         -0.4,
	"weak":          -0.38,
	"weaker":        -0.4,
	"negative":      -0.3,
	"pessimistic":   -0.5,
	"bearish":       -0.6,
	"loss":          -0.5,
	"lose":          -0.4,
	"fall":          -0.3,
	"drop":          -0.3,
	"plunge":        -0.6,
	"plummet":       -0.7,
	"slump":         -0.5,
	"crash":         -0.8,
	"tumble":        -0.5,
	"sink":          -0.4,
	"decline":       -0.4,
	"miss":          -0.4,
	"downgrade":     -0.5,
	"underperform":  -0.5,
	"cut":           -0.3,
	"layoff":        -0.5,
	"lawsuit":       -0.5,
	"sue":           -0.4,
	"fraud":         -0.8,
	"scandal":       -0.7,
	"probe":         -0.3,
	"investigation": -0.3,
	"fine":          -0.2,
	"recall":        -0.4,
	"risk":          -0.3,
	"risky":         -0.4,
	"fear":          -0.5,
	"concern":       -0.3,
	"warn":          -0.4,
	"warning":       -0.4,
	"bankrupt":      -0.9,
	"bankruptcy":    -0.9,
	"default":       -0.6,
	"debt":          -0.2,
	"volatile":      -0.3,
	"uncertain":     -0.3,
	"uncertainty":   -0.3,
	"terrible":      -1.0,
	"awful":         -1.0,
	"sad":           -0.5,
	"low":           -0.2,
	"fail":          -0.5,
	"failure":       -0.6,
	"halt":          -0.4,
	"struggle":      -0.4,
	"sell":          -0.2,
	"selloff":       -0.5,
}

// intensifiers multiply the polarity of the next scored word.
var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"highly":     1.3,
	"hugely":     1.4,
	"incredibly": 1.4,
	"slightly":   0.5,
	"somewhat":   0.7,
	"barely":     0.4,
}
