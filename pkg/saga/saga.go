// Package saga 按步骤执行一组本地操作,某步失败时逆序补偿已完成的步骤
//
// 用法:
//
//	s := saga.New("borrow")
//	s.AddStep("扣减册数", takeCopy, putCopyBack)
//	s.AddStep("记入在借", addBorrowed, removeBorrowed)
//	s.AddStep("记录历史", appendHistory, nil)
//	err := s.Execute(ctx)
//
// Execute返回的错误包装了失败步骤的原始错误,可以用errors.Is判断;
// 补偿也失败时,补偿错误通过errors.Join一并返回。
package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/xiebiao/library/pkg/logger"
)

// Step Saga中的一个步骤
// Compensate为nil表示该步骤无需补偿(通常是最后一步)
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次按序执行的步骤组合,不可复用
type Saga struct {
	name     string
	steps    []Step
	executed []Step
}

// New 创建Saga,name只用于日志
func New(name string) *Saga {
	return &Saga{name: name}
}

// AddStep 追加步骤,按添加顺序执行,按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
	return s
}

// Execute 依次执行每个步骤
// 第一步总会执行;之后ctx被取消时不再继续,并补偿已完成的步骤
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := ctx.Err(); i > 0 && err != nil {
			return s.abort(ctx, fmt.Errorf("%s已取消: %w", s.name, err))
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return s.abort(ctx, fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err))
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

// abort 逆序补偿已完成的步骤
// 某个补偿失败时继续执行其余补偿,所有错误合并返回
func (s *Saga) abort(ctx context.Context, cause error) error {
	// 补偿不受调用方取消影响
	ctx = context.WithoutCancel(ctx)

	errs := []error{cause}
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			logger.Ctx(ctx).Error().
				Err(err).
				Str("saga", s.name).
				Str("step", step.Name).
				Msg("补偿失败")
			errs = append(errs, fmt.Errorf("补偿[%s]失败: %w", step.Name, err))
		}
	}
	s.executed = nil

	if len(errs) == 1 {
		return cause
	}
	return errors.Join(errs...)
}
