// Package api provides the Baby Steps HTTP JSON API.
//
// All application routes live under /api; health probes sit outside the
// middleware stack:
//
//	GET  /health                          liveness probe
//	GET  /ready                           readiness probe (DB ping)
//
//	POST /api/auth/register               create account, send verification mail
//	POST /api/auth/login                  issue bearer token
//	GET  /api/auth/verify-email/{token}   confirm email address
//	POST /api/auth/resend-verification    re-send verification mail
//	POST /api/auth/request-password-reset start password reset flow
//	POST /api/auth/reset-password         finish password reset flow
//
//	POST/GET  /api/babies                 baby profiles
//	PUT/DELETE /api/babies/{id}
//
//	POST/GET  /api/feedings               activity tracking, each with
//	POST/GET  /api/diapers                DELETE /api/<kind>/{id}
//	POST/GET  /api/sleep   PATCH /api/sleep/{id}/end
//	POST/GET  /api/pumping
//	POST/GET  /api/measurements
//	POST/GET  /api/milestones
//	POST/GET  /api/reminders  PATCH /api/reminders/{id}
//	PATCH /api/reminders/{id}/notified  DELETE /api/reminders/{id}
//
//	GET  /api/dashboard/{baby_id}         today's summary
//	GET/PUT /api/dashboard/layout         widget arrangement
//	POST /api/dashboard/widgets           add widget
//	DELETE /api/dashboard/widgets/{id}
//	GET  /api/dashboard/available-widgets
//
//	POST /api/food/research               knowledge-base food matcher
//	POST /api/research                    knowledge-base research matcher
//	POST /api/food/safety-check           LLM safety assessment
//	GET  /api/food/safety-history
//	POST /api/emergency/training          LLM emergency instructions
//	POST/GET /api/meals                   meal plans
//	POST /api/meals/search                LLM meal search
//
// File structure:
//   - server.go: ServerConfig, route registration, middleware stack
//   - middleware.go: recovery, logging, CORS, bearer auth
//   - ratelimit.go: per-IP token bucket
//   - response.go: JSON response helpers
//   - health.go: health probes
//   - auth.go, babies.go, activities.go, reminders.go, dashboard.go,
//     knowledge.go, llm.go: route handlers
package api
