package basin

// RoundUpSamples rounds total up to the next multiple of workers so every
// worker gets the same share. The effective count may therefore exceed what
// was asked for; callers report it back to the user.
func RoundUpSamples(total, workers int) int {
	if workers <= 0 || total <= 0 {
		return total
	}
	return (total + workers - 1) / workers * workers
}

// Split divides total into workers buckets whose sizes differ by at most
// one, larger buckets first. With fewer samples than workers the trailing
// buckets are empty.
func Split(total, workers int) []int {
	if total <= 0 || workers <= 0 {
		return nil
	}
	one, rem := total/workers, total%workers
	out := make([]int, workers)
	for i := range out {
		out[i] = one
		if i < rem {
			out[i]++
		}
	}
	return out
}
