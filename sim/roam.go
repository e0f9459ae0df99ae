package sim

// Roaming walks in random directions for random durations
type Roaming struct {
	MaxTravel float64 // pixels per leg at full duration
	Timer     int     // ticks left in the current leg
}

// TickMax is the longest leg in ticks for the given speed, never below 1
func (r *Roaming) TickMax(speed, tickSeconds float64) int {
	if speed <= 0 || tickSeconds <= 0 {
		return 1
	}
	return max(int(r.MaxTravel/speed/tickSeconds), 1)
}

func (r *Roaming) Update(w *World, e *Entity, elapsed float64) Outcome {
	if r.Timer <= 0 {
		r.reroll(w, e)
	}
	e.Move(elapsed)
	return Continue
}

func (r *Roaming) Tick(*World, *Entity) Outcome {
	r.Timer--
	return Continue
}

func (r *Roaming) OnDelete(*World, *Entity) {}

// reroll picks a leg length in [tick_max/2, tick_max] and four independent coin flips
func (r *Roaming) reroll(w *World, e *Entity) {
	hi := r.TickMax(e.Speed, w.Settings.TickSeconds)
	lo := max(hi/2, 1)
	r.Timer = lo + w.rng.IntN(hi-lo+1)

	e.Intent = Intent{
		XPlus:  w.rng.IntN(2) == 1,
		XMinus: w.rng.IntN(2) == 1,
		YPlus:  w.rng.IntN(2) == 1,
		YMinus: w.rng.IntN(2) == 1,
	}
}
