package constants

// Session and context keys
const (
	SessionCookieName = "lift_session"
	ContextKeyUserID  = "user_id"
	ContextKeyProject = "project"
	ContextKeyRequest = "request_id"
	HeaderRequestID   = "X-Request-ID"
)

// Validation limits
const (
	MinPasswordLength = 9
	MinNameLength     = 3
	PostalCodeLength  = 5
	PasswordSpecials  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// User-facing messages. The application is used by Spanish lift installers,
// so every string that reaches the browser is in Spanish.
const (
	MsgRequired            = "Campo requerido"
	MsgInvalidField        = "Campo no válido"
	MsgInvalidEmail        = "Correo electrónico no válido"
	MsgEmailTaken          = "Ya existe una cuenta con el correo electrónico introducido"
	MsgNameTooShort        = "El nombre debe tener al menos 3 caracteres"
	MsgPasswordLength      = "Contraseña debe tener al menos 9 caracteres"
	MsgPasswordCase        = "Contraseña debe contener letras mayúsculas y minúsculas"
	MsgPasswordDigit       = "Contraseña debe contener al menos un dígito numérico"
	MsgPasswordSpecial     = "Contraseña debe contener al menos un carácter especial"
	MsgInvalidCredentials  = "Correo electrónico y/o contraseña incorrectos."
	MsgPostalCode          = "El código postal debe tener 5 dígitos"
	MsgOrderNumberTaken    = "Nº de orden ya en uso"
	MsgInvalidModification = "Tipo de modificación inválido"
	MsgInvalidNorm         = "Normativa aplicable inválida"
	MsgInvalidProcess      = "Proceso de legalización inválido"
	MsgProjectNotFound     = "Proyecto no encontrado"
	MsgInvalidRequest      = "Solicitud inválida"
	MsgGenericFailure      = "Ha ocurrido un error al procesar su solicitud"
	MsgTooManyAttempts     = "Demasiados intentos, inténtelo de nuevo más tarde"
	MsgAuthRequired        = "Autenticación requerida"
)
