package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records/internal/handler"
	"github.com/iliyamo/academic-records/internal/middleware"
	"github.com/iliyamo/academic-records/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /api/auth.
// The limiter middleware (Redis token bucket) fronts only the login
// route; verify and permissions are cheap and already gated by token
// validation. The verify route deliberately does NOT use JWTAuth: its
// handler passes the raw token to the service so current account state
// is re-checked alongside signature and expiry.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login, limiter)
	g.POST("/logout", a.Logout)
	g.GET("/verify", a.Verify)
	g.GET("/permissions", a.Permissions, middleware.JWTAuth(jwtSecret))
}

// RegisterAcademic registers the resource CRUD routes under /api. Each
// mutation route names its gates explicitly so the chain for any
// endpoint can be read off this function: authenticate, then role
// check, then (where configured) a fresh permission check against the
// store. Public listings get the response cache instead.
func RegisterAcademic(
	e *echo.Echo,
	careers *handler.CareerHandler,
	courses *handler.CourseHandler,
	users *handler.UserHandler,
	accesses middleware.AccessStore,
	jwtSecret string,
	cache echo.MiddlewareFunc,
) {
	authn := middleware.JWTAuth(jwtSecret)
	adminOnly := middleware.RequireRole(model.RoleAdministrador)
	staff := middleware.RequireRole(model.RoleAdministrador, model.RoleDocente)
	puedeCrearCarreras := middleware.RequirePermission("crear carreras", accesses)

	api := e.Group("/api")

	// Carreras. Mutations require the "crear carreras" permission,
	// re-read from the store on every call.
	api.GET("/carreras", careers.ListarCarreras, cache)
	api.POST("/carreras", careers.CrearCarrera, authn, puedeCrearCarreras)
	api.PUT("/carreras/:codigo", careers.ActualizarCarrera, authn, puedeCrearCarreras)

	// Cursos. Browsing is public; mutations are staff work.
	api.GET("/cursos", courses.ListarCursos, cache)
	api.GET("/cursos/:id", courses.ObtenerCurso)
	api.POST("/cursos", courses.CrearCurso, authn, staff)
	api.PUT("/cursos/:id", courses.ActualizarCurso, authn, staff)
	api.DELETE("/cursos/:id", courses.EliminarCurso, authn, adminOnly)

	// Estudiantes. Registration is open; administration is gated.
	api.POST("/estudiantes", users.RegistrarEstudiante)
	api.GET("/estudiantes", users.ListarEstudiantes, authn, staff)
	api.GET("/estudiantes/:ci", users.ObtenerEstudiante, authn)
	api.PUT("/estudiantes/:ci", users.ActualizarEstudiante, authn)
	api.DELETE("/estudiantes/:ci", users.EliminarEstudiante, authn, adminOnly)

	// Docentes, under the legacy /usuarios prefix the frontend expects.
	api.POST("/usuarios/registro-docente", users.RegistrarDocente, authn, adminOnly)
	api.GET("/usuarios/verificar-ci/:ci", users.VerificarCI)
	api.GET("/usuarios/docentes", users.ListarDocentes, authn)
	api.GET("/usuarios/docentes/:ci", users.ObtenerDocente, authn)
	api.PUT("/usuarios/docentes/:ci", users.ActualizarDocente, authn, adminOnly)
	api.DELETE("/usuarios/docentes/:ci", users.EliminarDocente, authn, adminOnly)

	// Administradores. The whole group is admin-only.
	admins := api.Group("/administradores", authn, adminOnly)
	admins.POST("", users.RegistrarAdministrador)
	admins.GET("", users.ListarAdministradores)
	admins.PUT("/:ci", users.ActualizarAdministrador)
	admins.DELETE("/:ci", users.EliminarAdministrador)
}
