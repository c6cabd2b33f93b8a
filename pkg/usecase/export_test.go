package usecase

// Export unexported functions for testing
var (
	DiffReposForTest = diffRepos
)
