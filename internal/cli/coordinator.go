package cli

import (
	"time"

	"github.com/hiroki-ota/veclink/internal/comm"
	"github.com/hiroki-ota/veclink/internal/config"
	"github.com/hiroki-ota/veclink/internal/logger"
	"github.com/hiroki-ota/veclink/internal/store"
	"github.com/spf13/cobra"
)

var coordinatorCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Listen for a worker and echo its vectors back",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		runCoordinator(cfg)
		return nil
	},
}

func runCoordinator(cfg config.Config) {
	log := logger.New(cfg.Debug)

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open session database: %v", err)
	}
	sessions := store.NewSessionStore(db)

	srv := comm.NewServer(comm.Config{Port: cfg.Port, Debug: cfg.Debug, Logger: log})
	srv.Setup()
	log.Infof("Waiting for worker on port %d", srv.Port())
	srv.Start()
	defer srv.Close()

	started := time.Now()

	// The worker announces the shape of the run before the first vector.
	rounds := srv.RecvValue()
	vectorLen := srv.RecvValue()
	log.Infof("Worker connected: %d rounds of %d values", rounds, vectorLen)

	var xorSum, addSum uint32
	for round := uint32(0); round < rounds; round++ {
		values := srv.RecvVector()
		if uint32(len(values)) != vectorLen {
			log.Fatalf("Round %d: expected %d values, received %d", round, vectorLen, len(values))
		}
		for _, v := range values {
			xorSum ^= v
			addSum += v
		}
		srv.SendVector(values)
	}

	// The worker's checksum pair must match what flowed through us.
	check := srv.RecvPair()
	if check[0] != xorSum || check[1] != addSum {
		log.Fatalf("Checksum mismatch: worker reported %v, observed [%d %d]", check, xorSum, addSum)
	}
	srv.SendQuad([4]uint32{rounds, vectorLen, xorSum, addSum})

	record := &store.Session{
		Role:       "coordinator",
		PeerAddr:   srv.RemoteAddr(),
		Rounds:     int(rounds),
		VectorLen:  int(vectorLen),
		BytesSent:  srv.TotalBytesSent(),
		StartedAt:  started.Unix(),
		FinishedAt: time.Now().Unix(),
	}
	if err := sessions.CreateSession(record); err != nil {
		log.Warnf("Failed to record session: %v", err)
	}

	log.Infof("Exchange complete: %d bytes sent in %s", srv.TotalBytesSent(), time.Since(started).Round(time.Millisecond))
}
