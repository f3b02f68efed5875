package group

// Sub sets p = a - b and returns p, by adding the negation of b. ecdsa's
// signature recovery is the one caller: it computes s·R - e·G with it.
func (p *Point) Sub(a, b *Point) *Point {
	neg := new(Point).Negate(b)
	return p.Add(a, neg)
}
