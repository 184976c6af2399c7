package dto

// Response es el sobre JSON común de la API:
// {success, data?, count?, message?, error?}.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK respuesta exitosa con datos.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKList respuesta exitosa con datos y conteo (listados).
func OKList(data any, count int) Response {
	return Response{Success: true, Data: data, Count: &count}
}

// OKMessage respuesta exitosa con datos y mensaje.
func OKMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Err respuesta de error con mensaje para el cliente.
func Err(message string) Response {
	return Response{Success: false, Error: message}
}
