package router

import (
	"net/http"

	"github.com/swiftload/loadboard-service/internal/handlers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(userHandler *handlers.UserHandler, loadHandler *handlers.LoadHandler, bidHandler *handlers.BidHandler, messageHandler *handlers.MessageHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/users/register", userHandler.Register)
	mux.HandleFunc("GET /api/users/{userId}", userHandler.GetUser)
	mux.HandleFunc("DELETE /api/users/{userId}", userHandler.DeleteUser)
	mux.HandleFunc("GET /api/users/{userId}/saved", loadHandler.GetSavedLoads)

	mux.HandleFunc("POST /api/loads/new", loadHandler.CreateLoad)
	mux.HandleFunc("GET /api/loads", loadHandler.GetLoads)
	mux.HandleFunc("GET /api/loads/stats", loadHandler.GetBoardStats)
	mux.HandleFunc("GET /api/loads/{loadId}", loadHandler.GetLoad)
	mux.HandleFunc("PUT /api/loads/{loadId}/status", loadHandler.UpdateLoadStatus)
	mux.HandleFunc("GET /api/loads/{loadId}/bids", bidHandler.GetLoadBids)
	mux.HandleFunc("POST /api/loads/{loadId}/save", loadHandler.SaveLoad)

	mux.HandleFunc("POST /api/bids/new", bidHandler.SubmitBid)
	mux.HandleFunc("GET /api/bids/my", bidHandler.GetUserBids)
	mux.HandleFunc("PUT /api/bids/{bidId}/accept", bidHandler.AcceptBid)
	mux.HandleFunc("PUT /api/bids/{bidId}/reject", bidHandler.RejectBid)

	mux.HandleFunc("POST /api/messages/send", messageHandler.SendMessage)
	mux.HandleFunc("GET /api/messages/inbox", messageHandler.GetInbox)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
