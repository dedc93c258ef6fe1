package match

import "testing"

func TestMapUpstreamStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want string
	}{
		{"NS", StatusScheduled},
		{"1H", StatusLive},
		{"2H", StatusLive},
		{"ET", StatusLive},
		{"HT", StatusHalftime},
		{"FT", StatusFinished},
		{"PST", StatusPostponed},
		{"CANC", StatusCancelled},
		{"ABD", StatusAbandoned},
		{"SUSP", StatusSuspended},
		{"ft", StatusFinished},
		{" ns ", StatusScheduled},
		{"WO", StatusScheduled},
		{"", StatusScheduled},
	}

	for _, tc := range cases {
		if got := MapUpstreamStatus(tc.code); got != tc.want {
			t.Fatalf("MapUpstreamStatus(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestIsLiveStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusLive, StatusHalftime} {
		if !IsLiveStatus(status) {
			t.Fatalf("expected %s to count as live", status)
		}
	}
	for _, status := range []string{StatusScheduled, StatusFinished, StatusPostponed, StatusSuspended} {
		if IsLiveStatus(status) {
			t.Fatalf("expected %s to not count as live", status)
		}
	}
}

func TestEventDedupKey(t *testing.T) {
	t.Parallel()

	extra := 2
	a := Event{MatchID: 10, TeamID: 3, Minute: 45, ExtraMinute: &extra, Type: "Goal", Player: "L. Messi"}
	b := Event{MatchID: 10, TeamID: 3, Minute: 45, Type: "Goal", Player: "L. Messi", Detail: "Penalty"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("detail and extra minute must not affect identity: %q vs %q", a.DedupKey(), b.DedupKey())
	}

	c := Event{MatchID: 10, TeamID: 3, Minute: 46, Type: "Goal", Player: "L. Messi"}
	if a.DedupKey() == c.DedupKey() {
		t.Fatalf("minute change must produce a new identity")
	}
}
