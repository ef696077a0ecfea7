package status

type (
	Code   uint16
	Status = string
)

// The reason phrases below are part of the wire contract and are sent literally, even
// where they diverge from the IANA registry (403 and 405).
const (
	OK                  Code = 200
	MovedPermanently    Code = 301
	BadRequest          Code = 400
	MethodNotAllowed    Code = 403
	NotFound            Code = 404
	UnsupportedMethod   Code = 405
	InternalServerError Code = 500
	BadGateway          Code = 502
)

// Text returns the reason phrase of the code. Unknown codes result in "Unknown Status Code".
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case MovedPermanently:
		return "Moved Permanently"
	case BadRequest:
		return "Bad Request"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case NotFound:
		return "Not Found"
	case UnsupportedMethod:
		return "Unsupported Method"
	case InternalServerError:
		return "Internal Server Error"
	case BadGateway:
		return "Bad Gateway"
	default:
		return "Unknown Status Code"
	}
}
