package globe

// GuessPalette is cycled through by guess index
var GuessPalette = []string{
	"#e6194b",
	"#3cb44b",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#42d4f4",
	"#f032e6",
	"#bfef45",
	"#fabed4",
	"#469990",
}

// GuessColor returns the trail color of the i-th wrong guess
func GuessColor(i int) string {
	if i < 0 {
		i = -i
	}
	return GuessPalette[i%len(GuessPalette)]
}
