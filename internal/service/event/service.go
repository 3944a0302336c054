package event

type Service struct {
	events     EventRepo
	categories CategoryRepo
	users      UserRepo
	stats      StatsClient
	cache      ViewsCache
	clock      Clock
}

func New(events EventRepo, categories CategoryRepo, users UserRepo, stats StatsClient, cache ViewsCache, clock Clock) *Service {
	return &Service{
		events:     events,
		categories: categories,
		users:      users,
		stats:      stats,
		cache:      cache,
		clock:      clock,
	}
}
