package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var maxSchedules int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	scheduleIDs := make([]uint, maxSchedules)

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxSchedules; i++ {
		i := i
		wg.Add(1)
		go func() {
			scheduleIDs[i] = insertSchedule()
			fmt.Printf("\rinserted schedule %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted %v schedules: used time=%v seconds, throughput=%v action/second\n",
		maxSchedules, usedTime.Seconds(), float64(maxSchedules)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxSchedules; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(scheduleIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v schedules: used time=%v seconds, throughput=%v action/second\n",
		maxSchedules, usedTime.Seconds(), float64(maxSchedules*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func rndSchedulePayload() map[string]any {
	hour := 1 + rnd.Intn(12)
	minute := rnd.Intn(60)
	ampm := "AM"
	if rnd.Intn(2) == 0 {
		ampm = "PM"
	}
	return map[string]any{
		"day_of_week":  weekdays[rnd.Intn(len(weekdays))],
		"feeding_time": fmt.Sprintf("%d:%02d %s", hour, minute, ampm),
		"food_portion": rndFloat64(1.0, 100.0, 1),
	}
}

func insertSchedule() uint {
	jsonData, _ := json.Marshal(rndSchedulePayload())
	resp, err := http.Post(fmt.Sprintf("http://%s/schedules", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var created struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		panic(err)
	}
	return created.ID
}

func doAction(scheduleID uint) {
	actions := []func(){
		genUpdateScheduleAction(scheduleID),
		genListSchedulesAction(),
		genGetAlertsAction(),
	}
	actionNames := []string{
		"UpdateSchedule",
		"ListSchedules",
		"GetAlerts",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for schedule %v", actionNames[index], scheduleID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genUpdateScheduleAction(scheduleID uint) func() {
	return func() {
		jsonData, _ := json.Marshal(rndSchedulePayload())
		req, _ := http.NewRequest(http.MethodPut,
			fmt.Sprintf("http://%s/schedules/%d", httpHostPort, scheduleID),
			bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
	}
}

func genListSchedulesAction() func() {
	return func() {
		day := ""
		if rnd.Intn(2) == 0 {
			day = "?day=" + weekdays[rnd.Intn(len(weekdays))]
		}
		resp, err := http.Get(fmt.Sprintf("http://%s/schedules%s", httpHostPort, day))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
	}
}

func genGetAlertsAction() func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/alerts", httpHostPort))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
	}
}
