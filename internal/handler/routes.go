package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/middleware"
	"github.com/noah-isme/parecer-api/internal/models"
)

type tokenValidator interface {
	ValidateToken(raw string) (*models.JWTClaims, error)
}

// Handlers groups every HTTP handler. Dashboard is optional.
type Handlers struct {
	Pareceres  *ParecerHandler
	Webhook    *WebhookHandler
	Students   *StudentHandler
	Classes    *ClassHandler
	Activities *ActivityHandler
	BNCCTags   *BNCCTagHandler
	Records    *ObservationHandler
	Milestones *MilestoneHandler
	Profiles   *TeacherProfileHandler
	Dashboard  *DashboardHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(r *gin.Engine, h Handlers, tokens tokenValidator, logger *zap.Logger) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group("/api")

	// Legacy-shaped routes answer with a flat {error} body.
	api.POST("/gerar-parecer", middleware.LegacyJWT(tokens), middleware.Audit(logger, "generate", "parecer"), h.Pareceres.Generate)
	api.POST("/webhook", middleware.LegacyJWT(tokens), h.Webhook.Forward)

	secured := api.Group("", middleware.JWT(tokens), middleware.WithResponseMeta())

	secured.GET("/alunos", h.Students.List)
	secured.POST("/alunos", middleware.Audit(logger, "create", "aluno"), h.Students.Create)
	secured.GET("/alunos/:id", h.Students.Get)
	secured.PUT("/alunos/:id", middleware.Audit(logger, "update", "aluno"), h.Students.Update)
	secured.DELETE("/alunos/:id", middleware.Audit(logger, "delete", "aluno"), h.Students.Delete)
	secured.GET("/alunos/:id/marcos", h.Milestones.List)
	secured.POST("/alunos/:id/marcos", middleware.Audit(logger, "create", "marco"), h.Milestones.Create)
	secured.DELETE("/alunos/:id/marcos/:marcoId", middleware.Audit(logger, "delete", "marco"), h.Milestones.Delete)
	secured.GET("/alunos/:id/pareceres", h.Pareceres.ListByStudent)

	secured.GET("/turmas", h.Classes.List)
	secured.POST("/turmas", middleware.Audit(logger, "create", "turma"), h.Classes.Create)
	secured.GET("/turmas/:id", h.Classes.Get)
	secured.PUT("/turmas/:id", middleware.Audit(logger, "update", "turma"), h.Classes.Update)
	secured.DELETE("/turmas/:id", middleware.Audit(logger, "delete", "turma"), h.Classes.Delete)

	secured.GET("/atividades", h.Activities.List)
	secured.POST("/atividades", middleware.Audit(logger, "create", "atividade"), h.Activities.Create)
	secured.GET("/atividades/:id", h.Activities.Get)
	secured.PUT("/atividades/:id", middleware.Audit(logger, "update", "atividade"), h.Activities.Update)
	secured.DELETE("/atividades/:id", middleware.Audit(logger, "delete", "atividade"), h.Activities.Delete)

	secured.GET("/tags-bncc", h.BNCCTags.List)
	secured.POST("/tags-bncc", middleware.Audit(logger, "create", "tag_bncc"), h.BNCCTags.Create)
	secured.DELETE("/tags-bncc/:id", middleware.Audit(logger, "delete", "tag_bncc"), h.BNCCTags.Delete)

	secured.GET("/registros", h.Records.List)
	secured.POST("/registros", middleware.Audit(logger, "create", "registro"), h.Records.Create)
	secured.GET("/registros/exportar", h.Records.ExportCSV)
	secured.POST("/registros/midia", h.Records.UploadMedia)
	secured.GET("/registros/:id", h.Records.Get)
	secured.PUT("/registros/:id", middleware.Audit(logger, "update", "registro"), h.Records.Update)
	secured.DELETE("/registros/:id", middleware.Audit(logger, "delete", "registro"), h.Records.Delete)

	secured.GET("/pareceres/:id", h.Pareceres.Get)
	secured.PUT("/pareceres/:id", middleware.Audit(logger, "update", "parecer"), h.Pareceres.Update)
	secured.GET("/pareceres/:id/pdf", h.Pareceres.PDF)

	secured.GET("/professor/perfil", h.Profiles.Get)
	secured.PUT("/professor/perfil", middleware.Audit(logger, "update", "perfil"), h.Profiles.Save)

	if h.Dashboard != nil {
		secured.GET("/dashboard/turmas/:id/alunos-em-risco", h.Dashboard.AtRisk)
		secured.GET("/dashboard/turmas/:id/cobertura-bncc", h.Dashboard.Coverage)
	}

	secured.GET("/metrics/resumo", h.Metrics.Summary)
}
