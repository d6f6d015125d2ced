package evolution

// Observer receives one report per completed generation. Returning false
// stops the loop before the next generation starts.
type Observer interface {
	Observe(r Report) bool
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r Report) bool

// Observe calls f(r).
func (f ObserverFunc) Observe(r Report) bool {
	return f(r)
}

type multiObserver []Observer

func (m multiObserver) Observe(r Report) bool {
	cont := true
	for _, o := range m {
		if !o.Observe(r) {
			cont = false
		}
	}
	return cont
}

// Observers combines several observers. Every observer sees every report;
// the loop continues only if all of them agree. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// StopAt stops once the best score reaches target or the generation count
// reaches maxGenerations. A non-positive maxGenerations disables that limit.
func StopAt(target float64, maxGenerations int) Observer {
	return ObserverFunc(func(r Report) bool {
		if r.MaxScore >= target {
			return false
		}
		return maxGenerations <= 0 || r.Generation < maxGenerations
	})
}
