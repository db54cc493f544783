package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/ammarsarhan/hagz-sub001/routes"
	"github.com/ammarsarhan/hagz-sub001/services"
	"github.com/ammarsarhan/hagz-sub001/storage"
	"github.com/ammarsarhan/hagz-sub001/utils"
)

func main() {
	godotenv.Load()
	db := storage.InitializeDB()
	storage.InitializeRedis()

	routes.Engine = services.NewEngine(storage.NewEngineStore(db))

	app := iris.New()
	app.Validator = validator.New()

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
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, routes.RefreshTokens)
		user.Get("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetProfile)
	}

	pitch := app.Party("/api/pitch")
	{
		pitch.Get("/", routes.ListPitches)
		pitch.Get("/{id:uint}", routes.GetPitch)
		pitch.Get("/{id:uint}/schedule", routes.GetWeeklySchedule)
		pitch.Get("/{id:uint}/schedule/exceptions", routes.ListScheduleExceptions)

		owner := pitch.Party("/", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware)
		{
			owner.Post("/", routes.CreatePitch)
			owner.Put("/{id:uint}", routes.UpdatePitch)
			owner.Post("/{id:uint}/submit", routes.SubmitPitch)
			owner.Post("/{id:uint}/ground", routes.CreateGround)
			owner.Patch("/{id:uint}/ground/{groundID:uint}/status", routes.UpdateGroundStatus)
			owner.Post("/{id:uint}/combination", routes.CreateCombination)
			owner.Post("/{id:uint}/schedule", routes.SetWeeklySchedule)
			owner.Post("/{id:uint}/schedule/exceptions", routes.CreateScheduleException)
			owner.Delete("/{id:uint}/schedule/exceptions/{exceptionID:uint}", routes.DeleteScheduleException)
			owner.Get("/{id:uint}/bookings", routes.GetPitchBookings)
		}
	}

	booking := app.Party("/api/booking", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Post("/", routes.CreateBooking)
		booking.Post("/preview/price", routes.PreviewBookingPrice)
		booking.Post("/preview/deadlines", routes.PreviewBookingDeadlines)
		booking.Get("/user", routes.GetUserBookings)
		booking.Post("/{id:uint}/cancel", routes.CancelBooking)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Patch("/pitch/{id:uint}/status", routes.AdminSuspendPitch)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Fatal(app.Listen(":" + port))
}
