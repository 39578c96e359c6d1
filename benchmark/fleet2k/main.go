package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SmdhMdep/iot-status-api/pkg/db"
	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

var maxDevices int = 2000
var httpHostPort string = "127.0.0.1:8080"

var providers = []string{"acme-corp", "beta-labs", "corpus-works"}
var labels = []string{"DEPLOYED", "UNDEPLOYED", "PERIODIC_BATCH"}

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seeds the offline sqlite stores with a synthetic fleet, then hammers the
// HTTP API with listing walks, lookups and label updates. Run the server in
// offline mode against the same STATUS_DB file first.
func main() {
	deviceNames := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceNames[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device names\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	entities := ledger.OfflineEntities()
	entities = append(entities, fleet.OfflineEntities()...)
	entities = append(entities, schemaregistry.OfflineEntities()...)
	dbInstance := db.GetInstance(db.UseSqliteDialector(), entities...)
	ledgerClient := ledger.NewSQLClient(dbInstance)
	fleetClient := fleet.NewSQLClient(dbInstance)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			seedDevice(ledgerClient, fleetClient, deviceNames[i])
			fmt.Printf("\rseeded device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rseeded %v devices: used time=%v seconds, throughput=%v device/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(deviceNames[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*2)/usedTime.Seconds(),
	)

	startTime = time.Now()
	pages, devices := walkListing()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"walked full listing: %v devices over %v pages, used time=%v seconds\n",
		devices, pages, usedTime.Seconds(),
	)
}

func seedDevice(ledgerClient *ledger.SQLClient, fleetClient *fleet.SQLClient, name string) {
	provider := providers[rnd.Intn(len(providers))]
	record := ledger.Record{
		SerialNumber: name,
		Provider:     &provider,
		Organization: "field-trials",
		Project:      "soil",
	}

	// half the fleet is provisioned and present in the index
	if rnd.Int31n(100000)%2 == 0 {
		status := "ACTIVE"
		record.ProvisioningStatus = &status
		err := fleetClient.Put(context.Background(), fleet.Thing{
			ThingName: name,
			Attributes: map[string]string{
				fleet.AttrRegistrationWay:    "fleet-provisioning",
				fleet.AttrSensorProvider:     provider,
				fleet.AttrSensorOrganization: "field-trials",
			},
			Connectivity: &fleet.ThingConnectivity{
				Connected: rnd.Int31n(100000)%2 == 0,
				Timestamp: time.Now().UnixMilli(),
			},
		})
		if err != nil {
			panic(err)
		}
	}

	if err := ledgerClient.Put(context.Background(), record); err != nil {
		panic(err)
	}
}

func doAction(name string) {
	actions := []func(){
		genGetDeviceAction(name),
		genUpdateLabelAction(name),
	}
	actionNames := []string{
		"GetDevice",
		"UpdateLabel",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], name)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genGetDeviceAction(name string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/devices/%s", httpHostPort, name))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}

func genUpdateLabelAction(name string) func() {
	return func() {
		payload := map[string]string{"label": labels[rnd.Intn(len(labels))]}
		jsonData, _ := json.Marshal(payload)

		req, err := http.NewRequest(http.MethodPut,
			fmt.Sprintf("http://%s/devices/%s/label", httpHostPort, name),
			bytes.NewBuffer(jsonData))
		if err != nil {
			panic(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			fmt.Printf("\nresponse status code != 204: %v\n", resp)
		}
	}
}

func walkListing() (pages, devices int) {
	page := ""
	for {
		params := url.Values{"page_size": {"100"}}
		if page != "" {
			params.Set("page", page)
		}

		resp, err := http.Get(fmt.Sprintf("http://%s/devices?%s", httpHostPort, params.Encode()))
		if err != nil {
			log.Fatal("Failed to list devices:", err)
		}

		var body struct {
			NextPage *string           `json:"nextPage"`
			Devices  []json.RawMessage `json:"devices"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			log.Fatal("Failed to decode devices page:", err)
		}

		pages++
		devices += len(body.Devices)
		if body.NextPage == nil {
			return pages, devices
		}
		page = *body.NextPage
	}
}
