package strategy

import "video-poker-service/internal/game/cards"

// combinations walks every k-subset of [0, n) in lexicographic order,
// reusing one index array.
type combinations struct {
	n, k    int
	idx     [cards.HandSize]int
	started bool
}

func newCombinations(n, k int) *combinations {
	return &combinations{n: n, k: k}
}

// next advances to the following subset, reporting false once exhausted.
func (c *combinations) next() bool {
	if !c.started {
		c.started = true
		if c.k > c.n {
			return false
		}
		for i := 0; i < c.k; i++ {
			c.idx[i] = i
		}
		return true
	}
	i := c.k - 1
	for i >= 0 && c.idx[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		return false
	}
	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return true
}

// indices is valid until the next call to next.
func (c *combinations) indices() []int { return c.idx[:c.k] }

// Binomial returns C(n, k), 0 when k is outside [0, n].
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
