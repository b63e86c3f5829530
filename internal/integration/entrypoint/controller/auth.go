// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigledger/backend/internal/application/usecase/auth"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/entrypoint/dto"
)

const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// AuthController handles the /auth endpoints.
type AuthController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	refreshTokenUseCase   *auth.RefreshTokenUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
	setPinUseCase         *auth.SetPinUseCase
	removePinUseCase      *auth.RemovePinUseCase
	loginWithPinUseCase   *auth.LoginWithPinUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	setPinUseCase *auth.SetPinUseCase,
	removePinUseCase *auth.RemovePinUseCase,
	loginWithPinUseCase *auth.LoginWithPinUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		refreshTokenUseCase:   refreshTokenUseCase,
		logoutUseCase:         logoutUseCase,
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
		setPinUseCase:         setPinUseCase,
		removePinUseCase:      removePinUseCase,
		loginWithPinUseCase:   loginWithPinUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	session, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	})
	c.writeSession(ctx, http.StatusCreated, session, err)
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	session, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	c.writeSession(ctx, http.StatusOK, session, err)
}

// LoginWithPin handles POST /auth/login/pin requests.
func (c *AuthController) LoginWithPin(ctx *gin.Context) {
	var req dto.PinLoginRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	session, err := c.loginWithPinUseCase.Execute(ctx.Request.Context(), auth.LoginWithPinInput{
		Email: req.Email,
		Pin:   req.Pin,
	})
	c.writeSession(ctx, http.StatusOK, session, err)
}

// SetPin handles PUT /auth/pin requests.
func (c *AuthController) SetPin(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SetPinRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	err := c.setPinUseCase.Execute(ctx.Request.Context(), auth.SetPinInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		Pin:             req.Pin,
	})
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "PIN login enabled"})
}

// RemovePin handles DELETE /auth/pin requests.
func (c *AuthController) RemovePin(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	if err := c.removePinUseCase.Execute(ctx.Request.Context(), userID); err != nil {
		writeAuthError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingToken) {
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. It answers 200 even for a
// missing or unusable token.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	_ = ctx.ShouldBindJSON(&req)

	output, _ := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
		AllDevices:   req.AllDevices,
	})

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeInvalidEmail) {
		return
	}

	if err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), req.Email); err != nil {
		writeAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: forgotPasswordMessage})
}

// ResetPassword handles POST /auth/reset-password requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAuthRequest(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}

// bindAuthRequest decodes the JSON body or answers 400 with code.
func bindAuthRequest(ctx *gin.Context, req any, code domainerror.AuthErrorCode) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(code),
		})
		return false
	}
	return true
}

func (c *AuthController) writeSession(ctx *gin.Context, status int, session *auth.Session, err error) {
	if err != nil {
		writeAuthError(ctx, err)
		return
	}
	ctx.JSON(status, dto.NewAuthResponse(session.AccessToken, session.RefreshToken, session.User))
}

// writeAuthError renders an AuthError with its status, anything else as a 500.
func writeAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(authStatus(authErr.Code), dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists, domainerror.ErrCodePinNotSet:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidResetToken,
		domainerror.ErrCodeExpiredResetToken,
		domainerror.ErrCodeInvalidPinFormat,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeInvalidPin:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
