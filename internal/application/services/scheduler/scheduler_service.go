package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/easayliu/movie-browser/pkg/logger"
)

// Job 定时任务
type Job struct {
	Name string
	Spec string
	Run  func()
}

// JobInfo 任务状态
type JobInfo struct {
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
	PrevRun time.Time `json:"prev_run,omitempty"`
}

// SchedulerService 管理后台定时任务:会话回收和趋势榜推送
type SchedulerService struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	specs   map[string]string
	mu      sync.RWMutex
	running bool
}

func NewSchedulerService() *SchedulerService {
	return &SchedulerService{
		cron:  cron.New(), // 使用标准5字段格式（分 时 日 月 周）
		jobs:  make(map[string]cron.EntryID),
		specs: make(map[string]string),
	}
}

// AddJob 注册任务,同名任务会被替换
func (s *SchedulerService) AddJob(job Job) error {
	if _, err := cron.ParseStandard(job.Spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", job.Spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.jobs[job.Name]; exists {
		s.cron.Remove(entryID)
	}

	name, run := job.Name, job.Run
	entryID, err := s.cron.AddFunc(job.Spec, func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Scheduled job panicked", "job", name, "panic", r)
			}
		}()
		logger.Debug("Running scheduled job", "job", name)
		run()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
	}

	s.jobs[job.Name] = entryID
	s.specs[job.Name] = job.Spec
	logger.Info("Job scheduled", "job", job.Name, "spec", job.Spec)
	return nil
}

// RemoveJob 移除任务
func (s *SchedulerService) RemoveJob(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		delete(s.specs, name)
	}
}

// Start 启动调度器
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "jobs", len(s.jobs))
	return nil
}

// Stop 停止调度器并等待运行中的任务结束
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		logger.Info("Scheduler service stopped")
	}
}

// Jobs 已注册任务,按名称排序
func (s *SchedulerService) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for name, entryID := range s.jobs {
		entry := s.cron.Entry(entryID)
		out = append(out, JobInfo{
			Name:    name,
			Spec:    s.specs[name],
			NextRun: entry.Next,
			PrevRun: entry.Prev,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
