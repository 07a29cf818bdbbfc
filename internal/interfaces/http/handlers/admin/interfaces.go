package admin

import (
	"context"

	admindto "github.com/lumastory/lumastory/internal/application/admin/dto"
	adminusecases "github.com/lumastory/lumastory/internal/application/admin/usecases"
	appaudit "github.com/lumastory/lumastory/internal/application/audit"
	auditdto "github.com/lumastory/lumastory/internal/application/audit/dto"
	auditusecases "github.com/lumastory/lumastory/internal/application/audit/usecases"
	moddto "github.com/lumastory/lumastory/internal/application/moderation/dto"
	modusecases "github.com/lumastory/lumastory/internal/application/moderation/usecases"
	usageusecases "github.com/lumastory/lumastory/internal/application/usage/usecases"
	userdto "github.com/lumastory/lumastory/internal/application/user/dto"
)

// Use case interfaces for the admin handlers

type listReportsUseCase interface {
	Execute(ctx context.Context, query modusecases.ListReportsQuery) (*modusecases.ListReportsResult, error)
}

type getReportUseCase interface {
	Execute(ctx context.Context, query modusecases.GetReportQuery) (*moddto.ReportDetailDTO, error)
}

type reviewReportUseCase interface {
	Execute(ctx context.Context, cmd modusecases.ReviewReportCommand) (*moddto.ReportDTO, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, query adminusecases.GetUserQuery) (*admindto.AdminUserDTO, error)
}

type changeTierUseCase interface {
	Execute(ctx context.Context, cmd adminusecases.ChangeTierCommand) (*userdto.UserDTO, error)
}

type changeRoleUseCase interface {
	Execute(ctx context.Context, cmd adminusecases.ChangeRoleCommand) (*userdto.UserDTO, error)
}

type getActivityLogUseCase interface {
	Execute(ctx context.Context, query auditusecases.GetActivityLogQuery) (*auditdto.ActivityLogDTO, error)
}

type exportActivityLogUseCase interface {
	Execute(ctx context.Context, cmd auditusecases.ExportActivityLogCommand) (*auditusecases.ExportActivityLogResult, error)
}

type resetDailyUsageUseCase interface {
	Execute(ctx context.Context, cmd usageusecases.ResetDailyUsageCommand) (*usageusecases.ResetDailyUsageResult, error)
}

type analyticsOverviewUseCase interface {
	Execute(ctx context.Context, actor appaudit.Actor) (*admindto.AnalyticsOverviewDTO, error)
}
