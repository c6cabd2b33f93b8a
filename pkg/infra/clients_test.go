package infra_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/octorelay/pkg/domain/mock"
	"github.com/secmon-lab/octorelay/pkg/infra"
)

func TestNew(t *testing.T) {
	t.Run("create new clients without options", func(t *testing.T) {
		clients := infra.New()
		// every client is nil without configuration
		gt.V(t, clients.GitHubApp()).Equal(nil)
		gt.V(t, clients.InstallationRegistry()).Equal(nil)
		gt.V(t, clients.SubscriptionRepository()).Equal(nil)
		gt.V(t, clients.MessageSender()).Equal(nil)
		gt.V(t, clients.AuditLog()).Equal(nil)
	})

	t.Run("WithGitHubApp option sets GitHub App client", func(t *testing.T) {
		mockGH := &mock.GitHubAppMock{}
		clients := infra.New(infra.WithGitHubApp(mockGH))
		gt.V(t, clients.GitHubApp()).Equal(mockGH)
	})

	t.Run("WithMessageSender option sets sender", func(t *testing.T) {
		mockSender := &mock.MessageSenderMock{}
		clients := infra.New(infra.WithMessageSender(mockSender))
		gt.V(t, clients.MessageSender()).Equal(mockSender)
	})

	t.Run("WithAuditLog option sets audit log", func(t *testing.T) {
		mockAudit := &mock.AuditLogMock{}
		clients := infra.New(infra.WithAuditLog(mockAudit))
		gt.V(t, clients.AuditLog()).Equal(mockAudit)
	})

	t.Run("multiple options can be combined", func(t *testing.T) {
		mockGH := &mock.GitHubAppMock{}
		mockRegistry := &mock.InstallationRegistryMock{}
		mockSubs := &mock.SubscriptionRepositoryMock{}

		clients := infra.New(
			infra.WithGitHubApp(mockGH),
			infra.WithInstallationRegistry(mockRegistry),
			infra.WithSubscriptionRepository(mockSubs),
		)

		gt.V(t, clients.GitHubApp()).Equal(mockGH)
		gt.V(t, clients.InstallationRegistry()).Equal(mockRegistry)
		gt.V(t, clients.SubscriptionRepository()).Equal(mockSubs)
	})
}
