package prize

// PickPrizeIndex picks the wheel segment a spin should land on: a uniformly
// random index into prizes, redrawn while the drawn prize is exhausted.
// Returns -1 when no prize has inventory left. The result is advisory only;
// allocation re-validates inventory server-side because other clients may
// deplete a prize between the pick and the allocation request.
//
// intn must behave like rand.Intn. It is injected so tests can pin the draw.
func PickPrizeIndex(prizes []PrizeResponse, intn func(n int) int) int {
	if len(prizes) == 0 || !anyAvailable(prizes) {
		return -1
	}

	for {
		i := intn(len(prizes))
		if prizes[i].Amount > 0 {
			return i
		}
	}
}

func anyAvailable(prizes []PrizeResponse) bool {
	for _, p := range prizes {
		if p.Amount > 0 {
			return true
		}
	}
	return false
}
