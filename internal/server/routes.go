// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/auth"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/controller"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/middleware"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	blacklist := auth.NewMemoryBlacklist()
	logout := auth.NewLogoutHandler(blacklist)
	ct := controller.NewController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.Use(middleware.EnvRateLimitMiddleware())
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))
			needAuth.Use(middleware.RejectRevokedTokens(blacklist))

			needAuth.POST("auth/logout", logout.Logout)

			file := needAuth.Group("/file")
			{
				file.GET(":id", ct.GetFile)
			}

			companyRoute := needAuth.Group("/company")
			{
				companyRoute.GET(":company_id", ct.GetCompanyByID)
				companyRoute.Use(middleware.CheckRole(model.RoleCompany))
				companyRoute.GET("myprofile", ct.GetCompanyProfile)
				companyRoute.PATCH("profile", ct.EditCompanyProfile)
				companyRoute.POST("profile/logo", middleware.SizeLimit(10<<20), ct.UploadLogo)
			}

			jobPostRoute := needAuth.Group("/jobpost")
			{
				jobPostRoute.GET("", ct.GetPosts)
				jobPostRoute.GET("/:id", ct.GetPostByID)
				jobPostRoute.Use(middleware.CheckRole(model.RoleCompany))
				jobPostRoute.POST("", ct.CreateJobPostHandler)
			}

			needCompanyAdmin := needAuth.Group("")
			{
				needCompanyAdmin.Use(middleware.CheckRole(model.RoleAdmin, model.RoleCompany))
				needCompanyAdmin.PATCH("jobpost/:id", ct.EditJobPost)
				needCompanyAdmin.DELETE("jobpost/:id", ct.DeleteJobPost)
				needCompanyAdmin.PATCH("application/:id/status", ct.UpdateApplicationStatus)
			}

			applicationRoute := needAuth.Group("/application")
			{
				applicationRoute.GET("", ct.GetApplications)
				applicationRoute.DELETE(":id", ct.DeleteApplication)
			}

			filterRoute := needAuth.Group("/filters")
			{
				filterRoute.GET(":kind", ct.GetSavedFilter)
				filterRoute.PUT(":kind", ct.PutSavedFilter)
			}

			needCompany := needAuth.Group("")
			{
				needCompany.Use(middleware.CheckRole(model.RoleCompany, model.RoleAdmin))
				needCompany.GET("talents", ct.GetTalents)
			}

			// Talent routes: apply role check once for all talent endpoints
			needTalent := needAuth.Group("")
			{
				needTalent.Use(middleware.CheckRole(model.RoleTalent))
				talentRoute := needTalent.Group("/talent")
				{
					talentRoute.GET("myprofile", ct.GetMyTalentProfile)
					talentRoute.PATCH("profile", ct.EditTalentProfile)
					talentRoute.POST("profile/resume", middleware.SizeLimit(10<<20), ct.UploadResume)
				}

				needTalent.POST("application", ct.ApplicationHandler)
				needTalent.POST("application/:id/withdraw", ct.WithdrawApplication)
				needTalent.GET("matches", ct.GetMyMatches)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
