package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	worker "github.com/okian/carta/internal/adapters/mq/worker"
	logging "github.com/okian/carta/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	convey.Convey("Given a new Pool", t, func() {
		// Initialize logging for tests
		_ = logging.Init()
		ctx := context.Background()

		convey.Convey("When creating a pool with default options", func() {
			pool := worker.NewPool(0)

			convey.Convey("Then it should pick a positive bound", func() {
				convey.So(pool, convey.ShouldNotBeNil)
				convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
				convey.So(pool.Size(), convey.ShouldBeLessThanOrEqualTo, 10)
			})
		})

		convey.Convey("When jobs finish out of order", func() {
			pool := worker.NewPool(4, worker.WithName("test-pool"))
			in := []int{50, 10, 30, 0, 20, 40}
			out, errs := worker.Map(ctx, pool, in, func(_ context.Context, ms int) (int, error) {
				time.Sleep(time.Duration(ms) * time.Millisecond)
				return ms * 2, nil
			})

			convey.Convey("Then results keep input order", func() {
				convey.So(out, convey.ShouldResemble, []int{100, 20, 60, 0, 40, 80})
				for _, err := range errs {
					convey.So(err, convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When more jobs than workers run", func() {
			pool := worker.NewPool(2)
			var active, peak int32
			errs := pool.Run(ctx, 8, func(context.Context, int) error {
				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})

			convey.Convey("Then concurrency never exceeds the bound", func() {
				convey.So(errs, convey.ShouldHaveLength, 8)
				convey.So(atomic.LoadInt32(&peak), convey.ShouldBeLessThanOrEqualTo, 2)
				convey.So(atomic.LoadInt32(&peak), convey.ShouldBeGreaterThan, 0)
			})
		})

		convey.Convey("When one job fails", func() {
			pool := worker.NewPool(3)
			boom := errors.New("boom")
			out, errs := worker.Map(ctx, pool, []string{"a", "b", "c"}, func(_ context.Context, s string) (string, error) {
				if s == "b" {
					return "", boom
				}
				return s + s, nil
			})

			convey.Convey("Then only its slot carries the error", func() {
				convey.So(out, convey.ShouldResemble, []string{"aa", "", "cc"})
				convey.So(errs[0], convey.ShouldBeNil)
				convey.So(errors.Is(errs[1], boom), convey.ShouldBeTrue)
				convey.So(errs[2], convey.ShouldBeNil)
			})
		})

		convey.Convey("When a job panics", func() {
			pool := worker.NewPool(1)
			errs := pool.Run(ctx, 2, func(_ context.Context, i int) error {
				if i == 0 {
					panic("bad job")
				}
				return nil
			})

			convey.Convey("Then the panic becomes that job's error", func() {
				convey.So(errs[0], convey.ShouldNotBeNil)
				convey.So(errs[0].Error(), convey.ShouldContainSubstring, "panicked")
				convey.So(errs[1], convey.ShouldBeNil)
			})
		})

		convey.Convey("When a job outlives the timeout", func() {
			pool := worker.NewPool(1, worker.WithTimeout(20*time.Millisecond))
			errs := pool.Run(ctx, 1, func(ctx context.Context, _ int) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Second):
					return nil
				}
			})

			convey.Convey("Then it sees its deadline", func() {
				convey.So(errors.Is(errs[0], context.DeadlineExceeded), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is already canceled", func() {
			pool := worker.NewPool(2)
			canceled, cancel := context.WithCancel(ctx)
			cancel()
			var calls int32
			errs := pool.Run(canceled, 3, func(context.Context, int) error {
				atomic.AddInt32(&calls, 1)
				return nil
			})

			convey.Convey("Then no job starts", func() {
				convey.So(atomic.LoadInt32(&calls), convey.ShouldEqual, 0)
				for _, err := range errs {
					convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
				}
			})
		})
	})
}
