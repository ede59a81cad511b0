package future

import "sync"

// Future carries the result of one unit of background work, e.g. one build shard.
type Future[T any] struct {
	response chan struct{}
	once     sync.Once
	value    T
	err      error
	status   Status
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{
		response: make(chan struct{}),
		status:   Pending,
	}
}

// 只有第一次完成有效 结果在唤醒等待者之前写入
func (f *Future[T]) complete(value T, err error, status Status) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		f.status = status
		close(f.response)
	})
}

func (f *Future[T]) MarkDoneWith(value T) {
	f.complete(value, nil, Done)
}

func (f *Future[T]) MarkDoneAsError(err error) {
	var zero T
	f.complete(zero, err, Failed)
}

func (f *Future[T]) Wait() {
	<-f.response
}

// Status does not block; it reports Pending until the future completes.
func (f *Future[T]) Status() Status {
	select {
	case <-f.response:
		return f.status
	default:
		return Pending
	}
}

// Err blocks until the future completes.
func (f *Future[T]) Err() error {
	f.Wait()
	return f.err
}

// Value blocks until the future completes. It is the zero value when the work failed.
func (f *Future[T]) Value() T {
	f.Wait()
	return f.value
}
