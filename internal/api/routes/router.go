package routes

import (
	"net/http"

	"github.com/santecare/pharmacare-backend/internal/api/handlers"
	"github.com/santecare/pharmacare-backend/internal/api/middleware"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	medicineHandler     *handlers.MedicineHandler
	saleHandler         *handlers.SaleHandler
	recordsHandler      *handlers.RecordsHandler
	telepharmacyHandler *handlers.TelepharmacyHandler
	platformHandler     *handlers.PlatformHandler
	sseHandler          *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	medicineHandler *handlers.MedicineHandler,
	saleHandler *handlers.SaleHandler,
	recordsHandler *handlers.RecordsHandler,
	telepharmacyHandler *handlers.TelepharmacyHandler,
	platformHandler *handlers.PlatformHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		medicineHandler:     medicineHandler,
		saleHandler:         saleHandler,
		recordsHandler:      recordsHandler,
		telepharmacyHandler: telepharmacyHandler,
		platformHandler:     platformHandler,
		sseHandler:          sseHandler,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/session", r.authHandler.Session)

	// Medicine endpoints
	r.mux.HandleFunc("GET /api/medicines", r.medicineHandler.ListMedicines)
	r.mux.HandleFunc("GET /api/medicines/search", r.medicineHandler.SearchMedicines)
	r.mux.HandleFunc("POST /api/medicines", r.medicineHandler.CreateMedicine)
	r.mux.HandleFunc("GET /api/medicines/{id}", r.medicineHandler.GetMedicine)
	r.mux.HandleFunc("PATCH /api/medicines/{id}", r.medicineHandler.UpdateMedicine)
	r.mux.HandleFunc("DELETE /api/medicines/{id}", r.medicineHandler.DeleteMedicine)

	// Sale endpoints
	r.mux.HandleFunc("POST /api/sales", r.saleHandler.RecordSale)
	r.mux.HandleFunc("GET /api/sales", r.saleHandler.ListSales)
	r.mux.HandleFunc("GET /api/sales/{id}", r.saleHandler.GetSale)

	// Order endpoints
	r.mux.HandleFunc("POST /api/orders", r.recordsHandler.CreateOrder)
	r.mux.HandleFunc("GET /api/orders", r.recordsHandler.ListOrders)
	r.mux.HandleFunc("GET /api/orders/{id}", r.recordsHandler.GetOrder)
	r.mux.HandleFunc("PATCH /api/orders/{id}", r.recordsHandler.UpdateOrder)

	// Paper prescription endpoints
	r.mux.HandleFunc("POST /api/prescriptions", r.recordsHandler.CreatePrescription)
	r.mux.HandleFunc("GET /api/prescriptions", r.recordsHandler.ListPrescriptions)
	r.mux.HandleFunc("GET /api/prescriptions/{id}", r.recordsHandler.GetPrescription)
	r.mux.HandleFunc("PATCH /api/prescriptions/{id}", r.recordsHandler.UpdatePrescription)

	// Patient endpoints
	r.mux.HandleFunc("POST /api/patients", r.recordsHandler.CreatePatient)
	r.mux.HandleFunc("GET /api/patients", r.recordsHandler.ListPatients)
	r.mux.HandleFunc("GET /api/patients/{id}", r.recordsHandler.GetPatient)
	r.mux.HandleFunc("PATCH /api/patients/{id}", r.recordsHandler.UpdatePatient)
	r.mux.HandleFunc("DELETE /api/patients/{id}", r.recordsHandler.DeletePatient)

	// Invoice endpoints
	r.mux.HandleFunc("POST /api/invoices", r.recordsHandler.CreateInvoice)
	r.mux.HandleFunc("GET /api/invoices", r.recordsHandler.ListInvoices)
	r.mux.HandleFunc("GET /api/invoices/{id}", r.recordsHandler.GetInvoice)
	r.mux.HandleFunc("PATCH /api/invoices/{id}", r.recordsHandler.UpdateInvoice)

	// Telepharmacy endpoints
	r.mux.HandleFunc("POST /api/telepharmacy/waiting-room", r.telepharmacyHandler.JoinWaitingRoom)
	r.mux.HandleFunc("GET /api/telepharmacy/waiting-room", r.telepharmacyHandler.ListWaitingRoom)
	r.mux.HandleFunc("POST /api/telepharmacy/consultations", r.telepharmacyHandler.StartConsultation)
	r.mux.HandleFunc("GET /api/telepharmacy/consultations", r.telepharmacyHandler.ListConsultations)
	r.mux.HandleFunc("GET /api/telepharmacy/consultations/active", r.telepharmacyHandler.GetActiveConsultation)
	r.mux.HandleFunc("POST /api/telepharmacy/consultations/{id}/end", r.telepharmacyHandler.EndConsultation)
	r.mux.HandleFunc("POST /api/telepharmacy/consultations/{id}/messages", r.telepharmacyHandler.SendMessage)
	r.mux.HandleFunc("GET /api/telepharmacy/consultations/{id}/messages", r.telepharmacyHandler.ListMessages)
	r.mux.HandleFunc("POST /api/telepharmacy/consultations/{id}/messages/read", r.telepharmacyHandler.MarkMessagesRead)
	r.mux.HandleFunc("POST /api/telepharmacy/prescriptions", r.telepharmacyHandler.CreatePrescription)
	r.mux.HandleFunc("GET /api/telepharmacy/prescriptions", r.telepharmacyHandler.ListPrescriptions)
	r.mux.HandleFunc("GET /api/telepharmacy/prescriptions/{id}", r.telepharmacyHandler.GetPrescription)
	r.mux.HandleFunc("POST /api/telepharmacy/prescriptions/{id}/validate", r.telepharmacyHandler.ValidatePrescription)
	r.mux.HandleFunc("POST /api/telepharmacy/prescriptions/{id}/dispense", r.telepharmacyHandler.DispensePrescription)
	r.mux.HandleFunc("POST /api/telepharmacy/prescriptions/{id}/cancel", r.telepharmacyHandler.CancelPrescription)
	r.mux.HandleFunc("POST /api/telepharmacy/follow-ups", r.telepharmacyHandler.CreateFollowUp)
	r.mux.HandleFunc("GET /api/telepharmacy/follow-ups", r.telepharmacyHandler.ListFollowUps)
	r.mux.HandleFunc("GET /api/telepharmacy/follow-ups/{id}", r.telepharmacyHandler.GetFollowUp)
	r.mux.HandleFunc("POST /api/telepharmacy/follow-ups/{id}/adherence", r.telepharmacyHandler.RecordAdherence)
	r.mux.HandleFunc("POST /api/telepharmacy/follow-ups/{id}/side-effects", r.telepharmacyHandler.RecordSideEffect)
	r.mux.HandleFunc("PUT /api/telepharmacy/availability", r.telepharmacyHandler.UpdateAvailability)
	r.mux.HandleFunc("GET /api/telepharmacy/availability", r.telepharmacyHandler.ListAvailability)
	r.mux.HandleFunc("POST /api/telepharmacy/notifications", r.telepharmacyHandler.CreateNotification)
	r.mux.HandleFunc("GET /api/telepharmacy/notifications", r.telepharmacyHandler.ListNotifications)
	r.mux.HandleFunc("POST /api/telepharmacy/notifications/{id}/read", r.telepharmacyHandler.MarkNotificationRead)

	// Super-admin endpoints
	r.mux.HandleFunc("POST /api/admin/pharmacies", r.platformHandler.CreatePharmacy)
	r.mux.HandleFunc("GET /api/admin/pharmacies", r.platformHandler.ListPharmacies)
	r.mux.HandleFunc("GET /api/admin/pharmacies/{id}", r.platformHandler.GetPharmacy)
	r.mux.HandleFunc("PATCH /api/admin/pharmacies/{id}", r.platformHandler.UpdatePharmacy)
	r.mux.HandleFunc("DELETE /api/admin/pharmacies/{id}", r.platformHandler.DeletePharmacy)
	r.mux.HandleFunc("POST /api/admin/pharmacy-requests", r.platformHandler.SubmitRequest)
	r.mux.HandleFunc("GET /api/admin/pharmacy-requests", r.platformHandler.ListRequests)
	r.mux.HandleFunc("POST /api/admin/pharmacy-requests/{id}/approve", r.platformHandler.ApproveRequest)
	r.mux.HandleFunc("POST /api/admin/pharmacy-requests/{id}/reject", r.platformHandler.RejectRequest)
	r.mux.HandleFunc("POST /api/admin/users", r.platformHandler.CreateSystemUser)
	r.mux.HandleFunc("GET /api/admin/users", r.platformHandler.ListSystemUsers)
	r.mux.HandleFunc("PATCH /api/admin/users/{id}", r.platformHandler.UpdateSystemUser)
	r.mux.HandleFunc("DELETE /api/admin/users/{id}", r.platformHandler.DeleteSystemUser)
	r.mux.HandleFunc("GET /api/admin/subscriptions", r.platformHandler.ListSubscriptions)
	r.mux.HandleFunc("PATCH /api/admin/subscriptions/{id}", r.platformHandler.UpdateSubscription)

	// Real-time streams
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/pharmacies/{id}", r.sseHandler.StreamPharmacyUpdates)
		r.mux.HandleFunc("GET /api/stream/stock", r.sseHandler.StreamStockAlerts)
		r.mux.HandleFunc("GET /api/stream/telepharmacy", r.sseHandler.StreamTelepharmacyEvents)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so every response gets CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
