package event

import "testing"

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := map[[2]Status]bool{
		{StatusLFG, StatusStarted}:   true,
		{StatusStarted, StatusEnded}: true,
	}
	all := []Status{StatusLFG, StatusStarted, StatusEnded}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s: got %v want %v", from, to, got, want)
			}
		}
	}

	if !StatusLFG.Active() || !StatusStarted.Active() || StatusEnded.Active() {
		t.Fatalf("unexpected Active() mapping")
	}
}

func TestWinner_FirstToReachThreshold(t *testing.T) {
	t.Parallel()

	votes := []Vote{
		{UserID: 1, FormatID: 10},
		{UserID: 2, FormatID: 20},
		{UserID: 3, FormatID: 20},
		{UserID: 4, FormatID: 10},
		{UserID: 5, FormatID: 10},
		{UserID: 6, FormatID: 20},
	}

	got, ok := Winner(votes, 3)
	if !ok || got != 10 {
		t.Fatalf("expected format 10 to win, got %d ok=%v", got, ok)
	}

	if _, ok := Winner(votes[:4], 3); ok {
		t.Fatalf("no format should reach 3 votes yet")
	}

	counts := Tally(votes)
	if counts[10] != 3 || counts[20] != 3 {
		t.Fatalf("unexpected tally: %+v", counts)
	}
}
