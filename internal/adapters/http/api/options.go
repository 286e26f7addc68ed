package api

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed by the CORS middleware. An empty
// list allows every origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = append([]string(nil), origins...)
	}
}
