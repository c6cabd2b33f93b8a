package server

var (
	GitHubEventToLifecycleEventForTest = githubEventToLifecycleEvent
	ErrorStatusForTest                 = errorStatus
)
