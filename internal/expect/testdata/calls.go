package calls

func example(t interface{ Expect(bool) any }, x int) {
	t.Expect(x == 14)
	t.Expect(x > 0 &&
		x < 100)
	t.Expect(x != 3).Print(x)
	_ = []any{t.Expect(x > 1), t.Expect(1 < x)}
}
