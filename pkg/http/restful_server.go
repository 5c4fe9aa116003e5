package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/pet-feeder-service/pkg/feeder"
)

type RestfulServer struct {
	Server           *gin.Engine
	Feeder           *feeder.Feeder
	RateLimiterStore *feeder.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(clientID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientID)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientID string) bool {
	limiter := rs.GetLimiter(clientID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(clientID string, clientRate float64, clientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(clientID, rate.Limit(clientRate), clientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	schedules := rs.Server.Group("/schedules")
	{
		schedules.POST("", rs.PostSchedule)
		schedules.GET("", rs.GetSchedules)
		schedules.PUT("/:id", rs.PutSchedule)
		schedules.DELETE("/:id", rs.DeleteSchedule)
	}

	rs.Server.GET("/alerts", rs.GetAlerts)
	rs.Server.POST("/feed", rs.PostFeed)
	rs.Server.POST("/clients/:client_id/limiter", rs.PostLimiter)
}
