package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Expiry formatting

	"billing_system/internal/auth"       // Credential and session services
	"billing_system/internal/domain"     // Importing domain models
	"billing_system/internal/middleware" // Session cookie and token lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Name     string `json:"name"`                        // Optional display name
}

// Request struct for sign-in, accepted as JSON or form data
type SignInRequest struct {
	Email       string `json:"email" form:"email"`             // Account email
	Username    string `json:"username" form:"username"`       // Alias of email used by the sign-in form
	Password    string `json:"password" form:"password"`       // Plain password
	CallbackURL string `json:"callbackUrl" form:"callbackUrl"` // Where to go after signing in
}

// Response struct for sign-in
type SignInResponse struct {
	OK     bool    `json:"ok"`              // Whether sign-in succeeded
	Error  *string `json:"error"`           // Failure reason, null on success
	Status int     `json:"status"`          // Mirrors the HTTP status
	URL    *string `json:"url"`             // Redirect target, null on failure
	Token  string  `json:"token,omitempty"` // Session token on success
}

// Response struct for session introspection
type SessionResponse struct {
	User    SessionUser `json:"user"`    // Identity carried by the token
	Expires string      `json:"expires"` // RFC 3339 expiry
}

// SessionUser is the identity embedded in a session token
type SessionUser struct {
	ID    uint   `json:"id"`    // User ID
	Email string `json:"email"` // User email
	Name  string `json:"name"`  // User name
}

// signInFailure builds the failure body for sign-in
func signInFailure(status int, msg string) SignInResponse {
	return SignInResponse{OK: false, Error: &msg, Status: status, URL: nil}
}

// RegisterHandler creates a new account
func RegisterHandler(creds *auth.Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := bindJSONObject(c, &req); err != nil {
			// Missing fields and unreadable bodies get different messages
			if errors.Is(err, domain.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
			return
		}
		// Hash the password and create the user
		user, err := creds.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
			return
		case errors.Is(err, domain.ErrConflict):
			// One account per email
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		case err != nil:
			respondError(c, "error", err)
			return
		}
		// Return the created user, hash redacted by its JSON tags
		c.JSON(http.StatusCreated, user)
	}
}

// SignInHandler authenticates a user, sets the session cookie and returns the token
func SignInHandler(sessions *auth.Sessions, baseURL string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest // Bind JSON or form request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, signInFailure(http.StatusBadRequest, "Invalid JSON format"))
			return
		}
		email := req.Email // Prefer email, fall back to username
		if email == "" {
			email = req.Username
		}
		// Verify credentials and issue a token
		session, err := sessions.Authenticate(c.Request.Context(), email, req.Password)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, signInFailure(http.StatusUnauthorized, "Invalid credentials"))
			return
		} else if err != nil {
			respondError(c, "error", err)
			return
		}
		// Resolve the post-login redirect
		target := baseURL
		if req.CallbackURL != "" {
			target = sessions.RedirectTarget(req.CallbackURL, baseURL)
		}
		// HttpOnly session cookie for browser clients
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, session.Token, int(sessions.TTL().Seconds()), "/", "", secureCookie, true)
		// Return the token in the response
		c.JSON(http.StatusOK, SignInResponse{OK: true, Error: nil, Status: http.StatusOK, URL: &target, Token: session.Token})
	}
}

// SessionHandler reports the identity carried by the current session token
func SessionHandler(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := middleware.TokenFromRequest(c) // Bearer header or cookie
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := sessions.Validate(tokenStr) // Signature and expiry check
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Return the identity and expiry
		c.JSON(http.StatusOK, SessionResponse{
			User:    SessionUser{ID: claims.UserID, Email: claims.Email, Name: claims.Name},
			Expires: claims.ExpiresAt.Time.UTC().Format(time.RFC3339),
		})
	}
}

// SignOutHandler clears the session cookie
func SignOutHandler(baseURL string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookie, true) // Expire the cookie
		c.JSON(http.StatusOK, gin.H{"url": baseURL})
	}
}
