// Package worker runs the avatar analysis pipeline: gateway intake fans
// audio, transcripts and context out over the broker; analysis operations
// turn them into voice characteristics, viseme sequences and emotion
// estimates; output operations push the results to the animator and redis.
package worker

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/external/animator"
	"github.com/superfeelapi/goAvatar/foundation/pubsub"
	"github.com/superfeelapi/goAvatar/foundation/redis"
	"github.com/superfeelapi/goAvatar/foundation/session"
	"github.com/superfeelapi/goAvatar/foundation/state"
	"github.com/superfeelapi/goAvatar/foundation/viseme"
	"go.uber.org/zap"
)

// Broker topics connecting the gateway to the analysis operations.
const (
	audioTopic      = "audio"
	acousticTopic   = "acoustic"
	transcriptTopic = "transcript"
	contextTopic    = "context"
	endTopic        = "end"
)

const subscriberCapacity = 10

type Worker struct {
	config     Config
	state      *state.State
	logger     *zap.SugaredLogger
	broker     *pubsub.Broker
	sessions   *session.Manager
	acoustic   *emotion.AcousticExtractor
	classifier *emotion.Classifier
	mapper     *viseme.Mapper

	gateway  *websocket.Conn
	animator *animator.Client
	redis    *redis.Redis

	wg       sync.WaitGroup
	shutdown sync.Once
	shut     chan struct{}
	error    chan error

	toVisemeCh          chan FramesPayload
	toAnimatorVoiceCh   chan VoicePayload
	toAnimatorVisemeCh  chan VisemePayload
	toAnimatorEmotionCh chan EmotionPayload
	toRedisCh           chan TransitionData
	newSessionCh        chan string
}

func Run(s Settings) <-chan error {
	w := &Worker{
		config:              s.Config,
		state:               state.NewState(),
		logger:              s.Logger,
		broker:              pubsub.NewBroker(),
		sessions:            s.Sessions,
		acoustic:            s.Acoustic,
		classifier:          emotion.NewClassifier(s.MinimumConfidence, s.Weights),
		mapper:              viseme.NewMapper(),
		gateway:             s.Gateway,
		animator:            s.Animator,
		redis:               s.Redis,
		shut:                make(chan struct{}),
		error:               make(chan error),
		toVisemeCh:          make(chan FramesPayload, 10),
		toAnimatorVoiceCh:   make(chan VoicePayload, 10),
		toAnimatorVisemeCh:  make(chan VisemePayload, 10),
		toAnimatorEmotionCh: make(chan EmotionPayload, 10),
		toRedisCh:           make(chan TransitionData, 10),
		newSessionCh:        make(chan string, 10),
	}

	if s.Animator == nil {
		w.state.Set(state.Animator, false)
	}
	if s.Redis == nil {
		w.state.Set(state.Redis, false)
	}

	operations := []func(){
		w.gatewayOperation,
		w.voiceAnalysisOperation,
		w.visemeOperation,
		w.emotionOperation,
		w.animatorOperation,
		w.redisOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return w.error
}

// Shutdown terminates all operations and reports err on the error channel
// once they have wound down. Safe to call from any operation; only the
// first call wins.
func (w *Worker) Shutdown(err error) {
	w.shutdown.Do(func() {
		w.logger.Infow("worker: shutdown: started")
		w.logger.Errorw("worker: shutdown", "ERROR", err)
		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)

		go func() {
			w.wg.Wait()
			w.logger.Infow("worker: shutdown: completed")

			if err != nil {
				w.error <- err
			}
		}()
	})
}
