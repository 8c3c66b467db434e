package handlers

// @title Tattoo Studio API
// @version 1.0
// @description Bookings, contact form, custom orders and order chat of a tattoo studio

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-Id
// @description Caller id in header identity mode

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token (token identity mode).

// @tag.name bookings
// @tag.description Booking operations

// @tag.name contact
// @tag.description Contact form

// @tag.name orders
// @tag.description Custom orders

// @tag.name messages
// @tag.description Order chat
