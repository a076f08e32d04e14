package model

// PublishResult reports the outcome of pushing a post to the remote blog.
type PublishResult struct {
	Success   bool
	Message   string
	URL       string
	CommitSHA string
}
