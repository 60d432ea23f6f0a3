package bench

// Arena progress callbacks, the arena never calls them concurrently
type ListenerLike interface {
	OnGameStart(info VersusWorkerInfo)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnGameStart(VersusWorkerInfo)    {}
func (DefaultListener) OnMoveMade(VersusWorkerInfo)     {}
func (DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (DefaultListener) Summary(VersusSummaryInfo)       {}
