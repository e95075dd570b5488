package terrain

// diamondSquare processes the rectangle tree one level at a time. Within a
// level the square step writes every interior center before the diamond step
// reads them, so an edge shared by two rectangles sees both centers.
func (s *Subdivider) diamondSquare(f *HeightField, root Task, decay float64) {
	level := []Task{root}
	for len(level) > 0 {
		for _, t := range level {
			s.visit(t)
		}
		s.squareStep(f, level)
		s.diamondStep(f, level)

		var next []Task
		for _, t := range level {
			if s.term.splits(t) {
				next = append(next, s.term.children(t, decay)...)
			}
		}
		level = next
	}
}

// hasCenter reports whether t's center lies strictly inside it.
func hasCenter(t Task) bool {
	xMid, yMid := t.mid()
	return xMid > t.XMin && xMid < t.XMax && yMid > t.YMin && yMid < t.YMax
}

func (s *Subdivider) squareStep(f *HeightField, level []Task) {
	for _, t := range level {
		if !hasCenter(t) {
			continue
		}
		xMid, yMid := t.mid()
		avg := (f.at(t.XMin, t.YMin) + f.at(t.XMax, t.YMin) + f.at(t.XMin, t.YMax) + f.at(t.XMax, t.YMax)) / 4
		s.set(f, xMid, yMid, s.noise.center(s.src, avg, t.Randomness))
	}
}

// diamond accumulates the neighbours of one edge midpoint.
type diamond struct {
	x, y       int
	ends       float64 // sum of the two edge endpoints
	centers    float64
	n          int
	randomness float64
}

func (s *Subdivider) diamondStep(f *HeightField, level []Task) {
	byCell := make(map[int]*diamond)
	var order []*diamond

	add := func(t Task, x, y, ax, ay, bx, by int) {
		if t.isCorner(x, y) {
			return
		}
		key := y*f.width + x
		d, ok := byCell[key]
		if !ok {
			d = &diamond{x: x, y: y, ends: f.at(ax, ay) + f.at(bx, by), randomness: t.Randomness}
			byCell[key] = d
			order = append(order, d)
		}
		if hasCenter(t) {
			xMid, yMid := t.mid()
			d.centers += f.at(xMid, yMid)
			d.n++
		}
	}

	for _, t := range level {
		xMid, yMid := t.mid()
		add(t, t.XMin, yMid, t.XMin, t.YMin, t.XMin, t.YMax)
		add(t, t.XMax, yMid, t.XMax, t.YMin, t.XMax, t.YMax)
		add(t, xMid, t.YMin, t.XMin, t.YMin, t.XMax, t.YMin)
		add(t, xMid, t.YMax, t.XMin, t.YMax, t.XMax, t.YMax)
	}

	for _, d := range order {
		avg := (d.ends + d.centers) / float64(2+d.n)
		s.set(f, d.x, d.y, s.noise.edge(s.src, avg, d.randomness))
	}
}
