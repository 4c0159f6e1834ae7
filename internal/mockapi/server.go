package mockapi

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/models"
)

// Server is an in-memory storefront backend for local development and
// tests. It mirrors the REST surface the client talks to, including the
// support conversation endpoints and their event stream.
type Server struct {
	mu     sync.Mutex
	router *gin.Engine
	log    *logrus.Entry

	users     []account
	products  []models.Product
	orders    []orderRecord
	wishlists map[string][]models.WishlistItem
	comments  []models.Comment
	returns   []models.ReturnRequest

	conversations map[int64]*conversation
	convByUser    map[string]int64

	nextUserID    int64
	nextOrderID   int64
	nextCommentID int64
	nextReturnID  int64
	nextConvID    int64
	nextMsgID     int64
}

type account struct {
	models.User
	Password string
}

type orderRecord struct {
	OrderID         int64             `json:"order_id"`
	UserID          int64             `json:"user_id,omitempty"`
	UserName        string            `json:"user_name,omitempty"`
	UserEmail       string            `json:"user_email,omitempty"`
	OrderDate       string            `json:"order_date,omitempty"`
	Status          string            `json:"status,omitempty"`
	DeliveryStatus  string            `json:"delivery_status,omitempty"`
	DeliveredAt     string            `json:"delivered_at,omitempty"`
	StatusUpdatedAt string            `json:"status_updated_at,omitempty"`
	TotalAmount     float64           `json:"total_amount"`
	ShippingFee     float64           `json:"shipping_fee,omitempty"`
	ShippingCompany string            `json:"shipping_company,omitempty"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	Items           []orderItemRecord `json:"items,omitempty"`
}

type orderItemRecord struct {
	OrderItemID int64   `json:"order_item_id,omitempty"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// NewServer creates a mock backend seeded with demo data.
func NewServer(log *logrus.Entry) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:        router,
		log:           log,
		wishlists:     make(map[string][]models.WishlistItem),
		conversations: make(map[int64]*conversation),
		convByUser:    make(map[string]int64),
		nextUserID:    100,
		nextOrderID:   1000,
		nextCommentID: 1,
		nextReturnID:  1,
		nextConvID:    1,
		nextMsgID:     1,
	}

	server.seed()
	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/auth/login", s.login)
		api.POST("/auth/register", s.register)
		api.POST("/auth/forgot", s.forgotPassword)
		api.POST("/auth/reset", s.resetPassword)

		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.PUT("/products/:id/stock", s.updateStock)

		api.GET("/orders", s.listOrders)
		api.GET("/orders/history", s.listOrders)
		api.PUT("/orders/:id/cancel", s.cancelOrder)
		api.PUT("/orders/:id/refund", s.refundOrder)
		api.PUT("/orders/:id/status", s.updateOrderStatus)
		api.GET("/orders/:id/invoice", s.orderInvoice)

		api.GET("/wishlist", s.getWishlist)
		api.POST("/wishlist", s.addWishlistItem)
		api.DELETE("/wishlist/:productId", s.removeWishlistItem)

		api.POST("/comments", s.addComment)
		api.GET("/comments/user", s.userComments)
		api.GET("/comments/pending", s.pendingComments)
		api.GET("/comments/can/:productId", s.canReview)
		api.GET("/comments/:productId", s.productComments)
		api.POST("/comments/:id/approve", s.approveComment)
		api.POST("/comments/:id/reject", s.rejectComment)

		api.GET("/users/:id", s.getUser)
		api.PATCH("/users/:id/address", s.updateUserAddress)
		api.PATCH("/users/:id/profile", s.updateUserProfile)

		api.POST("/returns", s.requestReturn)
		api.GET("/returns", s.listReturns)

		support := api.Group("/support")
		{
			support.GET("/conversation", s.getConversation)
			support.POST("/message", s.postMessage)
			support.POST("/conversations/:id/identify", s.identifyConversation)
			support.GET("/conversations/:id/stream", s.streamConversation)
		}
	}
}

func (s *Server) seed() {
	s.users = []account{
		{User: models.User{ID: 1, Email: "demo@example.com", Name: "Demo Customer", Role: models.RoleCustomer, Address: "Orta Mah. 1, Istanbul"}, Password: "password"},
		{User: models.User{ID: 2, Email: "sales@example.com", Name: "Sales Manager", Role: models.RoleSalesManager}, Password: "password"},
	}
	s.products = []models.Product{
		{ID: "p-1", Name: "Walnut Desk Organizer", Price: 749.90, OriginalPrice: 899.90, Stock: 12, Category: "office", Rating: 4.4},
		{ID: "p-2", Name: "Ceramic Pour-Over Set", Price: 1249.00, Stock: 5, Category: "kitchen", Rating: 4.8},
		{ID: "p-3", Name: "Linen Throw Blanket", Price: 559.50, Stock: 0, Category: "home", Rating: 4.1},
	}
	s.orders = []orderRecord{
		{
			OrderID:     1,
			UserID:      1,
			UserName:    "Demo Customer",
			UserEmail:   "demo@example.com",
			OrderDate:   time.Now().AddDate(0, 0, -6).Format("2006-01-02"),
			Status:      "in_transit",
			TotalAmount: 749.90,
			Items: []orderItemRecord{
				{OrderItemID: 1, ProductID: "p-1", Name: "Walnut Desk Organizer", Quantity: 1, Price: 749.90},
			},
		},
	}
}

// Router exposes the gin engine for httptest servers.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
