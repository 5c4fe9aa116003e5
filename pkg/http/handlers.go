package http

import (
	"errors"
	"net/http"
	"strconv"

	"liyu1981.xyz/pet-feeder-service/pkg/feeder"
	"liyu1981.xyz/pet-feeder-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type ScheduleRequest struct {
	DayOfWeek   string  `json:"day_of_week"`
	FeedingTime string  `json:"feeding_time"`
	FoodPortion float64 `json:"food_portion"`
}

var scheduleRequestSchema = z.Struct(z.Shape{
	"DayOfWeek":   z.String().Required(),
	"FeedingTime": z.String().Required(),
	"FoodPortion": z.Float64().Required(),
})

func scheduleErrorStatus(err error) int {
	switch {
	case errors.Is(err, feeder.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, feeder.ErrParse), errors.Is(err, feeder.ErrInvalidPortion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (rs *RestfulServer) PostSchedule(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ScheduleRequest
	if err := scheduleRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	id, err := rs.Feeder.Schedule.InsertSchedule(&models.FeedingSchedule{
		DayOfWeek:   req.DayOfWeek,
		FeedingTime: req.FeedingTime,
		FoodPortion: req.FoodPortion,
	})
	if err != nil {
		c.JSON(scheduleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (rs *RestfulServer) PutSchedule(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad schedule id"})
		return
	}

	var req ScheduleRequest
	if err := scheduleRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Feeder.Schedule.UpdateSchedule(&models.FeedingSchedule{
		ID:          uint(id),
		DayOfWeek:   req.DayOfWeek,
		FeedingTime: req.FeedingTime,
		FoodPortion: req.FoodPortion,
	}); err != nil {
		c.JSON(scheduleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) DeleteSchedule(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad schedule id"})
		return
	}

	if err := rs.Feeder.Schedule.DeleteSchedule(uint(id)); err != nil {
		c.JSON(scheduleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetSchedules(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var schedules []models.FeedingSchedule
	var err error
	if day := c.Query("day"); day != "" {
		schedules, err = rs.Feeder.Schedule.ListForDay(day)
	} else {
		schedules, err = rs.Feeder.Schedule.ListAll()
	}
	if err != nil {
		c.JSON(scheduleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alerts, err := rs.Feeder.Alert.GetAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type FeedRequest struct {
	Portion float64 `json:"portion"`
}

var feedRequestSchema = z.Struct(z.Shape{
	"Portion": z.Float64().Required(),
})

func (rs *RestfulServer) PostFeed(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req FeedRequest
	if err := feedRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Feeder.Feed.ManualFeed(req.Portion); err != nil {
		c.JSON(scheduleErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	clientID := c.Param("client_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(clientID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
