package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/controllers"
	"hotel-ops/middleware"
)

// Controllers groups the handlers SetupRouter mounts. Webhook is nil when
// card payments are not configured.
type Controllers struct {
	Rooms        *controllers.RoomController
	RoomTypes    *controllers.RoomTypeController
	Guests       *controllers.GuestController
	Transactions *controllers.TransactionController
	Bills        *controllers.BillController
	Staff        *controllers.StaffController
	Dashboard    *controllers.DashboardController
	Webhook      *controllers.WebhookController
}

type Options struct {
	Origins     []string
	JWTSecret   string
	RateLimiter *middleware.IPRateLimiter
	Logger      *zap.Logger
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(opts.Logger))

	origins := opts.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limited := middleware.RateLimitByIP(opts.RateLimiter, opts.Logger)

	api := r.Group("/api")
	{
		api.POST("/auth/login", limited, ctl.Staff.Login)
		if ctl.Webhook != nil {
			api.POST("/webhook/stripe", limited, ctl.Webhook.HandleStripe)
		}

		secured := api.Group("", middleware.AuthJWT(opts.JWTSecret))
		admin := middleware.RequireAdmin()

		rooms := secured.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			// must stay ahead of /:id
			rooms.GET("/available", ctl.Rooms.GetAvailableRooms)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.POST("", admin, ctl.Rooms.CreateRoom)
			rooms.PATCH("/:id", admin, ctl.Rooms.UpdateRoom)
			rooms.PUT("/:id", admin, ctl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", admin, ctl.Rooms.DeleteRoom)
		}

		roomTypes := secured.Group("/room-types")
		{
			roomTypes.GET("", ctl.RoomTypes.GetRoomTypes)
			roomTypes.GET("/:id", ctl.RoomTypes.GetRoomType)
			roomTypes.POST("", admin, ctl.RoomTypes.CreateRoomType)
			roomTypes.PUT("/:id", admin, ctl.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", admin, ctl.RoomTypes.DeleteRoomType)
		}

		guests := secured.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
		}

		transactions := secured.Group("/transactions")
		{
			transactions.GET("", ctl.Transactions.GetTransactions)
			transactions.GET("/quote", ctl.Transactions.Quote)
			transactions.GET("/:id", ctl.Transactions.GetTransaction)
			transactions.POST("", ctl.Transactions.CreateTransaction)
			transactions.POST("/:id/checkin", ctl.Transactions.CheckIn)
			transactions.POST("/:id/checkout", ctl.Transactions.CheckOut)
			transactions.DELETE("/:id", ctl.Transactions.DeleteTransaction)
		}

		bills := secured.Group("/bills")
		{
			bills.GET("", ctl.Bills.GetBills)
			bills.GET("/export", ctl.Bills.ExportBills)
			bills.GET("/:id", ctl.Bills.GetBill)
			bills.POST("/:id/pay", ctl.Bills.PayBill)
		}

		staff := secured.Group("/staff")
		{
			staff.GET("/me", ctl.Staff.Me)
			staff.GET("", admin, ctl.Staff.GetStaff)
			staff.GET("/:id", ctl.Staff.GetStaffByID)
			staff.POST("", admin, ctl.Staff.CreateStaff)
			staff.PUT("/:id", admin, ctl.Staff.UpdateStaff)
			staff.DELETE("/:id", admin, ctl.Staff.DeleteStaff)
		}

		dashboard := secured.Group("/dashboard")
		{
			dashboard.GET("", ctl.Dashboard.GetSummary)
			dashboard.GET("/occupancy", ctl.Dashboard.GetOccupancy)
			dashboard.GET("/revenue", ctl.Dashboard.GetRevenue)
		}
	}

	return r
}
