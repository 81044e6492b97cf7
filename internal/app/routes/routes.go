package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/controllers"
	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	professorController *controllers.ProfessorController,
	courseHoursController *controllers.CourseHoursController,
	certificateController *controllers.CertificateController,
	verificationController *controllers.VerificationController,
	leadController *controllers.LeadController,
	settingsController *controllers.SettingsController,
	authMiddleware *middleware.AuthMiddleware,
	csrfMiddleware *middleware.CSRFMiddleware,
) {
	// The QR code on every certificate points here
	router.GET("/verificar/:code", verificationController.VerifyCertificate)

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Marketing site endpoints
	v1.POST("/leads", leadController.CreateLead)
	v1.GET("/configuracoes", settingsController.GetSettings)
	v1.GET("/cursos", courseController.ListCourses)
	v1.GET("/cursos/:id", courseController.GetCourseByID)

	// Pre-registration completion through the emailed one-time link
	v1.POST("/pre-cadastro/:token", authController.CompletePreRegistration)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/csrf", authController.GetCSRFToken)
		authenticated.POST("/auth/logout", authController.Logout)

		// The back office is admin-only; every mutation also needs the
		// CSRF token from /auth/csrf
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		admin.Use(csrfMiddleware.Protect())
		{
			students := admin.Group("/alunos")
			{
				students.GET("", studentController.ListStudents)
				students.GET("/:id", studentController.GetStudentByID)
				students.POST("", studentController.CreateStudent)
				students.PUT("/:id", studentController.UpdateStudent)
				students.DELETE("/:id", studentController.DeleteStudent)
				students.POST("/:id/foto", studentController.UploadStudentPhoto)
				students.POST("/pre-cadastro", studentController.PreRegisterStudents)
			}

			courses := admin.Group("/cursos")
			{
				courses.POST("", courseController.CreateCourse)
				courses.PUT("/:id", courseController.UpdateCourse)
				courses.DELETE("/:id", courseController.DeleteCourse)
			}

			professors := admin.Group("/professores")
			{
				professors.GET("", professorController.ListProfessors)
				professors.GET("/:id", professorController.GetProfessorByID)
				professors.POST("", professorController.CreateProfessor)
				professors.PUT("/:id", professorController.UpdateProfessor)
				professors.DELETE("/:id", professorController.DeleteProfessor)
				professors.POST("/:id/assinatura", professorController.UploadSignature)
			}

			courseHours := admin.Group("/carga-horaria")
			{
				courseHours.GET("", courseHoursController.ListCourseHours)
				courseHours.POST("", courseHoursController.CreateCourseHours)
			}

			certificates := admin.Group("/certificados")
			{
				certificates.POST("/:id/gerar", certificateController.GenerateCertificate)
				certificates.POST("/:id/regerar", certificateController.RegenerateCertificate)
				certificates.POST("/gerar-lote", certificateController.GenerateBatch)
				certificates.DELETE("/:id", certificateController.DeleteCertificate)
				certificates.GET("/:id/visualizar", certificateController.ViewCertificate)
				certificates.GET("/:id/download", certificateController.DownloadCertificatePDF)
			}

			admin.GET("/leads", leadController.ListLeads)
			admin.PUT("/configuracoes", settingsController.UpdateSettings)
		}
	}
}
