package main

import (
	"log"
	"os"

	"homestays-server/routes"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web client
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	authed := []iris.Handler{accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware}

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	property := app.Party("/api/properties")
	{
		property.Get("/", routes.SearchProperties)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Get("/{id:uint}/reviews", routes.ListPropertyReviews)

		property.Post("/", append(authed, routes.CreateProperty)...)
		property.Put("/{id:uint}", append(authed, routes.UpdateProperty)...)
		property.Delete("/{id:uint}", append(authed, routes.DeleteProperty)...)
		property.Get("/{id:uint}/reservations", append(authed, routes.GetPropertyReservations)...)
		property.Post("/{id:uint}/availability", append(authed, routes.ValidateReservationAvailability)...)
		property.Post("/images", append(authed, routes.UploadPropertyImages)...)
	}

	app.Get("/api/my-properties", append(authed, routes.GetMyProperties)...)

	reservation := app.Party("/api/reservations", authed...)
	{
		reservation.Get("/", routes.GetUserReservations)
		reservation.Post("/", routes.CreateReservation)
		reservation.Get("/{id:uint}", routes.GetReservation)
		reservation.Put("/{id:uint}/status", routes.UpdateReservationStatus)
		reservation.Post("/{id:uint}/cancel", routes.CancelReservation)
	}

	review := app.Party("/api/reviews", authed...)
	{
		review.Post("/", routes.CreateReview)
		review.Put("/{id:uint}", routes.UpdateReview)
		review.Delete("/{id:uint}", routes.DeleteReview)
	}

	notification := app.Party("/api/notifications", authed...)
	{
		notification.Get("/", routes.GetNotifications)
		notification.Patch("/{id:uint}/read", routes.MarkNotificationRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/properties", routes.AdminListProperties)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Patch("/reservations/{id:uint}/status", routes.AdminUpdateReservationStatus)
		admin.Delete("/reviews/{id:uint}", routes.AdminDeleteReview)
		admin.Get("/stats", routes.AdminStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("listening on :" + port)
	app.Listen(":" + port)
}
