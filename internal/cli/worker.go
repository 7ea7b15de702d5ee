package cli

import (
	"math/rand"
	"time"

	"github.com/hiroki-ota/veclink/internal/comm"
	"github.com/hiroki-ota/veclink/internal/config"
	"github.com/hiroki-ota/veclink/internal/logger"
	"github.com/hiroki-ota/veclink/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Dial the coordinator and exchange random vectors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		runWorker(cfg)
		return nil
	},
}

func runWorker(cfg config.Config) {
	log := logger.New(cfg.Debug)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open session database: %v", err)
	}
	sessions := store.NewSessionStore(db)

	client := comm.NewClient(comm.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		Debug:  cfg.Debug,
		Logger: log,
	})
	client.Connect()
	defer client.Close()

	started := time.Now()

	client.SendValue(uint32(cfg.Rounds))
	client.SendValue(uint32(cfg.VectorLen))

	bar := progressbar.Default(int64(cfg.Rounds), "exchanging")
	var xorSum, addSum uint32
	for round := 0; round < cfg.Rounds; round++ {
		values := make([]uint32, cfg.VectorLen)
		for i := range values {
			values[i] = rand.Uint32()
			xorSum ^= values[i]
			addSum += values[i]
		}

		client.SendVector(values)
		echo := client.RecvVector()
		if len(echo) != len(values) {
			log.Fatalf("Round %d: echo has %d values, sent %d", round, len(echo), len(values))
		}
		for i := range values {
			if echo[i] != values[i] {
				log.Fatalf("Round %d: echo differs at index %d", round, i)
			}
		}
		_ = bar.Add(1)
	}

	client.SendPair([2]uint32{xorSum, addSum})
	summary := client.RecvQuad()
	if summary != [4]uint32{uint32(cfg.Rounds), uint32(cfg.VectorLen), xorSum, addSum} {
		log.Fatalf("Coordinator summary mismatch: %v", summary)
	}

	record := &store.Session{
		Role:       "worker",
		PeerAddr:   client.RemoteAddr(),
		Rounds:     cfg.Rounds,
		VectorLen:  cfg.VectorLen,
		BytesSent:  client.TotalBytesSent(),
		StartedAt:  started.Unix(),
		FinishedAt: time.Now().Unix(),
	}
	if err := sessions.CreateSession(record); err != nil {
		log.Warnf("Failed to record session: %v", err)
	}

	log.Infof("Exchange complete: %d bytes sent in %s", client.TotalBytesSent(), time.Since(started).Round(time.Millisecond))
}
