package theme

func ptr(v float64) *float64 { return &v }

func stops(colors ...string) []StopSpec {
	s := make([]StopSpec, len(colors))
	for i, c := range colors {
		s[i] = StopSpec{Color: c}
	}
	return s
}

var builtins = []struct {
	name string
	opts Options
}{
	{"classic", Options{
		BgColor: "#111111",
		ColorStops: []StopSpec{
			{Color: "hsl(0, 100%, 50%)"},
			{Color: "hsl(60, 100%, 50%)", Level: ptr(0.85), Pos: ptr(0.6)},
			{Color: "hsl(120, 100%, 50%)", Level: ptr(0.475)},
		},
	}},
	{"prism", Options{
		BgColor: "#111111",
		ColorStops: stops(
			"hsl(0, 100%, 50%)",
			"hsl(60, 100%, 50%)",
			"hsl(120, 100%, 50%)",
			"hsl(180, 100%, 47%)",
			"hsl(240, 100%, 58%)",
		),
	}},
	{"rainbow", Options{
		BgColor:   "#111111",
		Modifiers: Modifiers{Horizontal: true},
		ColorStops: stops(
			"hsl(0, 100%, 50%)",
			"hsl(60, 100%, 50%)",
			"hsl(120, 100%, 50%)",
			"hsl(180, 100%, 47%)",
			"hsl(240, 100%, 58%)",
			"hsl(300, 100%, 50%)",
			"hsl(360, 100%, 50%)",
		),
	}},
	{"orangered", Options{
		BgColor:    "#3e2f29",
		PeakColor:  "#ffd8a8",
		ColorStops: stops("#ff4500", "#b22222"),
	}},
	{"steelblue", Options{
		BgColor:    "#222c35",
		ColorStops: stops("#00bfff", "#4682b4"),
	}},
}
