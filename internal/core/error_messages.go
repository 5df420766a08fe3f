package core

// error_messages.go maps technical errors to Spanish user messages with a
// code that can be quoted when reporting a problem.
//
// # Error Codes Reference
//
// # Backend Errors (API001-API099)
//
//	API001 - The country API answered with a non-2xx status
//	         Action: Try again in a few moments
//	         Match: *countries.HTTPError anywhere in the chain
//
// # Network Errors (NET001-NET099)
//
//	NET001 - Connection refused: the country API is not reachable
//	         Action: Check that the backend is running
//	         Patterns: "connection refused", "no such host"
//
//	NET002 - Timeout: the country API did not answer in time
//	         Action: Try again
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Page session expired or unknown
//	         Action: Reload the page
//	         Patterns: "session not found"
//
// # Sort Errors (SORT001-SORT099)
//
//	SORT001 - Unknown sort column
//	          Patterns: "unknown sort key"
//
// # Sync Errors (SYNC001-SYNC099)
//
//	SYNC001 - Too many syncs already running
//	          Patterns: "too many concurrent syncs"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests from this client
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/countrydash/internal/countries"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var backendStatusMessage = UserMessage{
	Message: "El servidor de datos respondió con un error",
	Action:  "Intentá de nuevo en unos momentos",
	Code:    "API001",
}

var errorPatterns = []errorPattern{
	// Network (NET001-NET002)
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "No se pudo conectar con el servidor de datos",
			Action:  "Verificá que el backend esté en ejecución",
			Code:    "NET001",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "No se pudo conectar con el servidor de datos",
			Action:  "Verificá que el backend esté en ejecución",
			Code:    "NET001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "El servidor de datos no respondió a tiempo",
			Action:  "Intentá de nuevo",
			Code:    "NET002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "El servidor de datos no respondió a tiempo",
			Action:  "Intentá de nuevo",
			Code:    "NET002",
		},
	},

	// Session (SES001)
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "La sesión del tablero expiró",
			Action:  "Recargá la página",
			Code:    "SES001",
		},
	},

	// Sort (SORT001)
	{
		pattern: "unknown sort key",
		msg: UserMessage{
			Message: "Columna de orden desconocida",
			Action:  "Elegí una columna de la tabla",
			Code:    "SORT001",
		},
	},

	// Sync (SYNC001)
	{
		pattern: "too many concurrent syncs",
		msg: UserMessage{
			Message: "Hay demasiadas sincronizaciones en curso",
			Action:  "Esperá un momento y volvé a intentar",
			Code:    "SYNC001",
		},
	},

	// Rate limiting (RATE001)
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Esperá un momento antes de volver a intentar",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Intentá de nuevo",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A backend status error is recognised by type; everything else by
// pattern. Unknown errors get ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var httpErr *countries.HTTPError
	if errors.As(err, &httpErr) {
		return backendStatusMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Código: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Código: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// ToastDetail is the text shown after a toast prefix for err. Backend
// status errors keep their own text ("Error 502"), errors with a known
// mapping use the Spanish message, anything else its raw text.
func ToastDetail(err error) string {
	if countries.StatusOf(err) != 0 || !IsUserFacing(err) {
		return err.Error()
	}
	return MapError(err).Message
}
