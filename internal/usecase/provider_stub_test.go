package usecase

import "context"

// stubProvider satisfies UpstreamProvider with per-call hooks. Unset
// hooks behave like an unconfigured feed and return nothing.
type stubProvider struct {
	fetchLeagues      func(ctx context.Context, seasonYear int) []UpstreamLeague
	fetchTeams        func(ctx context.Context, leagueAPIID int64, seasonYear int) []UpstreamTeam
	fetchFixtures     func(ctx context.Context, query FixtureQuery) []UpstreamFixture
	fetchFixtureByID  func(ctx context.Context, fixtureAPIID int64) (UpstreamFixture, bool)
	fetchLiveFixtures func(ctx context.Context) []UpstreamFixture
	fetchEvents       func(ctx context.Context, fixtureAPIID int64) []UpstreamEvent
	fetchOddsBulk     func(ctx context.Context, fixtureAPIIDs []int64) ([]UpstreamOdds, error)
}

func (p *stubProvider) Configured() bool {
	return true
}

func (p *stubProvider) FetchLeagues(ctx context.Context, seasonYear int) []UpstreamLeague {
	if p.fetchLeagues == nil {
		return nil
	}
	return p.fetchLeagues(ctx, seasonYear)
}

func (p *stubProvider) FetchTeams(ctx context.Context, leagueAPIID int64, seasonYear int) []UpstreamTeam {
	if p.fetchTeams == nil {
		return nil
	}
	return p.fetchTeams(ctx, leagueAPIID, seasonYear)
}

func (p *stubProvider) FetchFixtures(ctx context.Context, query FixtureQuery) []UpstreamFixture {
	if p.fetchFixtures == nil {
		return nil
	}
	return p.fetchFixtures(ctx, query)
}

func (p *stubProvider) FetchFixtureByID(ctx context.Context, fixtureAPIID int64) (UpstreamFixture, bool) {
	if p.fetchFixtureByID == nil {
		return UpstreamFixture{}, false
	}
	return p.fetchFixtureByID(ctx, fixtureAPIID)
}

func (p *stubProvider) FetchLiveFixtures(ctx context.Context) []UpstreamFixture {
	if p.fetchLiveFixtures == nil {
		return nil
	}
	return p.fetchLiveFixtures(ctx)
}

func (p *stubProvider) FetchEvents(ctx context.Context, fixtureAPIID int64) []UpstreamEvent {
	if p.fetchEvents == nil {
		return nil
	}
	return p.fetchEvents(ctx, fixtureAPIID)
}

func (p *stubProvider) FetchHeadToHead(_ context.Context, _, _ int64) []UpstreamFixture {
	return nil
}

func (p *stubProvider) FetchStandings(_ context.Context, _ int64, _ int) []UpstreamStandingRow {
	return nil
}

func (p *stubProvider) FetchLineups(_ context.Context, _ int64) []UpstreamLineup {
	return nil
}

func (p *stubProvider) FetchInjuries(_ context.Context, _ int64, _ int) []UpstreamInjury {
	return nil
}

func (p *stubProvider) FetchOddsBulk(ctx context.Context, fixtureAPIIDs []int64) ([]UpstreamOdds, error) {
	if p.fetchOddsBulk == nil {
		return nil, nil
	}
	return p.fetchOddsBulk(ctx, fixtureAPIIDs)
}
