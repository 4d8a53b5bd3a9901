package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/gorilla/websocket"
	"github.com/superfeelapi/goAvatar/business/worker"
	"github.com/superfeelapi/goAvatar/foundation/config"
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/external/animator"
	"github.com/superfeelapi/goAvatar/foundation/logger"
	"github.com/superfeelapi/goAvatar/foundation/redis"
	"github.com/superfeelapi/goAvatar/foundation/session"
	"github.com/superfeelapi/goAvatar/foundation/voice"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Avatar struct {
			ID             string `conf:"default:avatar-1"`
			ProfileID      string `conf:"default:default"`
			ConfigFilePath string `conf:"default:/etc/goAvatar/profiles.json,noprint"`
		}
		Gateway struct {
			Scheme string `conf:"default:ws"`
			Host   string `conf:"default:127.0.0.1:8080"`
			Path   string `conf:"default:/gateway"`
			ApiKey string `conf:"default:gateway-key,noprint"`
		}
		Animator struct {
			Scheme string `conf:"default:ws"`
			Host   string `conf:"default:127.0.0.1:9090"`
			Path   string `conf:"default:/animator"`
			ApiKey string `conf:"default:animator-key,noprint"`
		}
		Redis struct {
			InUse          bool   `conf:"default:true"`
			Address        string `conf:"default:127.0.0.1:6379"`
			Password       string `conf:"default:,noprint"`
			EmotionChannel string `conf:"default:goAvatar:emotion"`
		}
		Logger struct {
			LogDirectory string `conf:"default:/var/log/goAvatar/,noprint"`
		}
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	// Configuration Parsing
	_, err := conf.Parse("", &cfg)
	if err != nil {
		os.Exit(1)
	}

	// =================================================================================================================
	// Version Checking Support

	displayVersion := flag.Bool("version", false, "Display version and exit")
	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, cfg.Avatar.ID, "goAvatar")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// =================================================================================================================
	// Set Profile Configuration

	profile, err := config.GetProfile(cfg.Avatar.ConfigFilePath, cfg.Avatar.ProfileID)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Configuration Stringify

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "config", out)

	// =================================================================================================================
	// Redis

	var redisClient *redis.Redis
	if cfg.Redis.InUse {
		redisClient, err = redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.EmotionChannel, log)
		if err != nil {
			log.Errorw("startup", "ERROR", err)
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// =================================================================================================================
	// Animator

	animatorURL := url.URL{
		Scheme: cfg.Animator.Scheme,
		Host:   cfg.Animator.Host,
		Path:   cfg.Animator.Path,
	}

	animatorClient := animator.New(animatorURL.String(), cfg.Animator.ApiKey)
	if err := animatorClient.SetupConnection(); err != nil {
		log.Errorw("startup", "ERROR", err)
		animatorClient = nil
	}
	if animatorClient != nil {
		defer animatorClient.Close()
	}

	// =================================================================================================================
	// Gateway

	gatewayURL := url.URL{
		Scheme: cfg.Gateway.Scheme,
		Host:   cfg.Gateway.Host,
		Path:   cfg.Gateway.Path,
	}

	gateway, _, err := websocket.DefaultDialer.Dial(gatewayURL.String(), http.Header{"api-key": []string{cfg.Gateway.ApiKey}})
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}
	defer gateway.Close()

	// =================================================================================================================
	// Analysis

	sessions, err := session.NewManager(
		voice.Config{
			SampleRate:           profile.Audio.SampleRate,
			WindowSize:           profile.Audio.WindowSize,
			HopSize:              profile.Audio.HopSize,
			MelFilterCount:       profile.Audio.MelFilterCount,
			MFCCCoefficientCount: profile.Audio.MFCCCoefficientCount,
		},
		emotion.TrackerConfig{
			HistoryCapacity: profile.Emotion.HistoryCapacity,
			Window:          time.Duration(profile.Emotion.SmoothingWindowMs) * time.Millisecond,
		},
	)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	acoustic, err := emotion.NewAcousticExtractor(profile.Audio.SampleRate)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Run Worker

	workerCh := worker.Run(worker.Settings{
		Logger:   log,
		Gateway:  gateway,
		Animator: animatorClient,
		Redis:    redisClient,
		Sessions: sessions,
		Acoustic: acoustic,
		Config: worker.Config{
			AvatarID:          cfg.Avatar.ID,
			ProfileID:         profile.ID,
			SampleRate:        profile.Audio.SampleRate,
			MinimumConfidence: profile.Emotion.MinimumConfidence,
			Weights: emotion.Weights{
				Text:    profile.Emotion.TextWeight,
				Audio:   profile.Emotion.AudioWeight,
				Context: profile.Emotion.ContextWeight,
			},
		},
	})

	// Blocking main and waiting for error or shutdown.
	err = <-workerCh

	log.Infow("shutdown", "status", "shutdown started")
	defer log.Infow("shutdown", "status", "shutdown complete")

	if err != nil {
		log.Errorw("shutdown", "ERROR", err)
	}
}
