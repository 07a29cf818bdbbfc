package http

import (
	adminUsecases "github.com/lumastory/lumastory/internal/application/admin/usecases"
	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	auditUsecases "github.com/lumastory/lumastory/internal/application/audit/usecases"
	childprofileUsecases "github.com/lumastory/lumastory/internal/application/childprofile/usecases"
	moderationUsecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	paymentUsecases "github.com/lumastory/lumastory/internal/application/payment/usecases"
	storyUsecases "github.com/lumastory/lumastory/internal/application/story/usecases"
	supportUsecases "github.com/lumastory/lumastory/internal/application/support/usecases"
	usageApp "github.com/lumastory/lumastory/internal/application/usage"
	usageUsecases "github.com/lumastory/lumastory/internal/application/usage/usecases"
	userUsecases "github.com/lumastory/lumastory/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the container.
type allUseCases struct {
	// Account & usage
	limitService *usageApp.LimitCheckService
	syncUser     *userUsecases.SyncUserUseCase
	getAccount   *userUsecases.GetAccountUseCase
	resetUsage   *usageUsecases.ResetDailyUsageUseCase

	// Child profiles
	createChildProfile *childprofileUsecases.CreateChildProfileUseCase
	listChildProfiles  *childprofileUsecases.ListChildProfilesUseCase
	deleteChildProfile *childprofileUsecases.DeleteChildProfileUseCase
	generateAvatar     *childprofileUsecases.GenerateAvatarUseCase

	// Stories
	createStory      *storyUsecases.CreateStoryUseCase
	listStories      *storyUsecases.ListStoriesUseCase
	getStory         *storyUsecases.GetStoryUseCase
	changeVisibility *storyUsecases.ChangeVisibilityUseCase
	deleteStory      *storyUsecases.DeleteStoryUseCase

	// Moderation
	fileReport   *moderationUsecases.FileReportUseCase
	listReports  *moderationUsecases.ListReportsUseCase
	getReport    *moderationUsecases.GetReportUseCase
	reviewReport *moderationUsecases.ReviewReportUseCase

	// Support
	createTicket *supportUsecases.CreateTicketUseCase
	listTickets  *supportUsecases.ListTicketsUseCase
	getTicket    *supportUsecases.GetTicketUseCase
	updateTicket *supportUsecases.UpdateTicketUseCase

	// Admin & audit
	activityLogger    *appaudit.ActivityLogger
	getAdminUser      *adminUsecases.GetUserUseCase
	changeTier        *adminUsecases.ChangeTierUseCase
	changeRole        *adminUsecases.ChangeRoleUseCase
	analyticsOverview *adminUsecases.GetAnalyticsOverviewUseCase
	getActivityLog    *auditUsecases.GetActivityLogUseCase
	exportActivityLog *auditUsecases.ExportActivityLogUseCase

	// Billing
	subscriptionWebhook *paymentUsecases.HandleSubscriptionWebhookUseCase
}
