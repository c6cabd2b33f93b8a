package infra

import (
	"github.com/secmon-lab/octorelay/pkg/domain/interfaces"
)

type Clients struct {
	githubApp     interfaces.GitHubApp
	registry      interfaces.InstallationRegistry
	subscriptions interfaces.SubscriptionRepository
	messageSender interfaces.MessageSender
	auditLog      interfaces.AuditLog
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHubApp() interfaces.GitHubApp {
	return x.githubApp
}
func (x *Clients) InstallationRegistry() interfaces.InstallationRegistry {
	return x.registry
}
func (x *Clients) SubscriptionRepository() interfaces.SubscriptionRepository {
	return x.subscriptions
}
func (x *Clients) MessageSender() interfaces.MessageSender {
	return x.messageSender
}
func (x *Clients) AuditLog() interfaces.AuditLog {
	return x.auditLog
}

func WithGitHubApp(client interfaces.GitHubApp) Option {
	return func(x *Clients) {
		x.githubApp = client
	}
}

func WithInstallationRegistry(repo interfaces.InstallationRegistry) Option {
	return func(x *Clients) {
		x.registry = repo
	}
}

func WithSubscriptionRepository(repo interfaces.SubscriptionRepository) Option {
	return func(x *Clients) {
		x.subscriptions = repo
	}
}

func WithMessageSender(sender interfaces.MessageSender) Option {
	return func(x *Clients) {
		x.messageSender = sender
	}
}

func WithAuditLog(auditLog interfaces.AuditLog) Option {
	return func(x *Clients) {
		x.auditLog = auditLog
	}
}
