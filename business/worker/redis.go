package worker

import "github.com/superfeelapi/goAvatar/foundation/state"

func (w *Worker) redisOperation() {
	w.logger.Infow("worker: redisOperation: G started")
	defer w.logger.Infow("worker: redisOperation: G completed")

	w.logger.Infow("worker: redisOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: redisOperation: received shut signal")
			return

		case data := <-w.toRedisCh:
			if !w.state.Get(state.Redis) {
				continue
			}
			if err := w.redis.Produce(data); err != nil {
				w.state.Set(state.Redis, false)
				w.logger.Errorw("worker: redisOperation: redis", "ERROR", err)
			}
		}
	}
}
