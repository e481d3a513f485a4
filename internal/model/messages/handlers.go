package messages

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/record"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
	"max.ks1230/finance-tracker/internal/model/reports"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am your personal finance tracker 🤖\n" + helpMessage
	loveToTalkMessage     = "I would love to talk about it more! Try " + startCommand

	registeredMessage    = "User registered successfully."
	userExistsMessage    = "Sorry! User already exists."
	invalidLoginMessage  = "Invalid username or password. Try again"
	loggedOutMessage     = "You are logged out."
	loginFirstMessage    = "Please log in first."
	recordAddedMessage   = "Record added successfully!"
	recordDeletedMessage = "Record deleted successfully!"
	recordUpdatedMessage = "Congrats! Record updated successfully."
	invalidIndexMessage  = "Invalid record index. Try again!"
	noRecordsMessage     = "No records found at this time."
	noExpensesMessage    = "No expenses recorded."
	invalidPeriodMessage = "Invalid period specified. Should be monthly or weekly"

	incorrectUsageMessage  = "That is an incorrect command usage"
	incorrectAmountMessage = "The amount is incorrect. Should be a number"
	incorrectTypeMessage   = "The record type is incorrect. Should be income or expense"
	tryLaterMessage        = "Can't reach your records atm. Try later"
)

const helpMessage = `Here is what I can do:
/register <user> <password>
/login <user> <password>
/add <description>;<amount>;<category>;<income|expense>
/list
/delete <index>
/update <index> <field>=<value>[;<field>=<value>...]
/report <monthly|weekly>
/totals /savings /distribution /logout`

const (
	startCommand        = "/start"
	registerCommand     = "/register"
	loginCommand        = "/login"
	logoutCommand       = "/logout"
	addCommand          = "/add"
	listCommand         = "/list"
	deleteCommand       = "/delete"
	updateCommand       = "/update"
	reportCommand       = "/report"
	totalsCommand       = "/totals"
	savingsCommand      = "/savings"
	distributionCommand = "/distribution"
)

// cache kinds invalidated whenever the record set changes
var reportKinds = []string{
	"report:" + reports.PeriodMonthly,
	"report:" + reports.PeriodWeekly,
	"totals",
	"savings",
	"distribution",
}

type financeManager interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) error
	Logout()
	CurrentUsername() (string, error)
	Add(ctx context.Context, description string, amount float64, category string, t record.Type) error
	Delete(ctx context.Context, index int) error
	Update(ctx context.Context, index int, patch record.Patch) error
	List(ctx context.Context) ([]record.FinancialRecord, error)
}

type reportGenerator interface {
	Totals(ctx context.Context, username string) (income, expense float64, err error)
	Savings(ctx context.Context, username string) (float64, error)
	PeriodReport(ctx context.Context, username, period string) ([]reports.PeriodRow, error)
	SpendingDistribution(ctx context.Context, username string) ([]reports.CategoryRow, error)
}

type reportCache interface {
	GetReport(username, kind string) (string, error)
	CacheReport(username, kind, report string) error
	InvalidateCache(username string, kinds []string) error
}

type handler func(ctx context.Context, arg string, userID int64) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	manager     financeManager
	generator   reportGenerator
	cache       reportCache
}

// newHandler wires the command map. cache may be nil, which disables
// report caching.
func newHandler(manager financeManager, generator reportGenerator, cache reportCache) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		manager:     manager,
		generator:   generator,
		cache:       cache,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, userID)
	}
	return dontUnderstandMessage, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[registerCommand] = s.handleRegister
	m[loginCommand] = s.handleLogin
	m[logoutCommand] = s.handleLogout
	m[addCommand] = s.handleAdd
	m[listCommand] = s.handleList
	m[deleteCommand] = s.handleDelete
	m[updateCommand] = s.handleUpdate
	m[reportCommand] = s.handleReport
	m[totalsCommand] = s.handleTotals
	m[savingsCommand] = s.handleSavings
	m[distributionCommand] = s.handleDistribution

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ int64) (string, error) {
	return helloMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ int64) (string, error) {
	return loveToTalkMessage, nil
}

func (s *HandlerService) handleRegister(ctx context.Context, arg string, _ int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	err := s.manager.Register(ctx, args[0], args[1])
	if errors.Is(err, customerr.ErrDuplicateUser) {
		return userExistsMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle register")
	}
	return registeredMessage, nil
}

func (s *HandlerService) handleLogin(ctx context.Context, arg string, _ int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) != 2 {
		return incorrectUsageMessage, nil
	}
	err := s.manager.Authenticate(ctx, args[0], args[1])
	if errors.Is(err, customerr.ErrInvalidCredential) {
		return invalidLoginMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle login")
	}
	return "Congrats! Authentication successful. Welcome, " + args[0] + "!", nil
}

func (s *HandlerService) handleLogout(_ context.Context, _ string, _ int64) (string, error) {
	s.manager.Logout()
	return loggedOutMessage, nil
}

func (s *HandlerService) handleAdd(ctx context.Context, arg string, _ int64) (string, error) {
	parts := splitArgs(arg)
	if len(parts) != 4 {
		return incorrectUsageMessage, nil
	}
	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return incorrectAmountMessage, nil
	}
	t, err := record.ParseType(parts[3])
	if err != nil {
		return incorrectTypeMessage, nil
	}

	err = s.manager.Add(ctx, parts[0], amount, parts[2], t)
	if errors.Is(err, customerr.ErrAuthRequired) {
		return loginFirstMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle add")
	}
	s.invalidateReports()
	return recordAddedMessage, nil
}

func (s *HandlerService) handleList(ctx context.Context, _ string, _ int64) (string, error) {
	recs, err := s.manager.List(ctx)
	if errors.Is(err, customerr.ErrAuthRequired) {
		return loginFirstMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle list")
	}
	if len(recs) == 0 {
		return noRecordsMessage, nil
	}
	return formatRecords(recs), nil
}

func (s *HandlerService) handleDelete(ctx context.Context, arg string, _ int64) (string, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return invalidIndexMessage, nil
	}
	err = s.manager.Delete(ctx, index)
	if errors.Is(err, customerr.ErrAuthRequired) {
		return loginFirstMessage, nil
	}
	if errors.Is(err, customerr.ErrIndexOutOfRange) {
		return invalidIndexMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle delete")
	}
	s.invalidateReports()
	return recordDeletedMessage, nil
}

func (s *HandlerService) handleUpdate(ctx context.Context, arg string, _ int64) (string, error) {
	split := strings.SplitN(strings.TrimSpace(arg), " ", 2)
	index, err := strconv.Atoi(split[0])
	if err != nil {
		return invalidIndexMessage, nil
	}
	// an index without fields is a valid no-op update
	var patch record.Patch
	if len(split) == 2 {
		var msg string
		patch, msg = parsePatch(split[1])
		if msg != "" {
			return msg, nil
		}
	}

	err = s.manager.Update(ctx, index, patch)
	if errors.Is(err, customerr.ErrAuthRequired) {
		return loginFirstMessage, nil
	}
	if errors.Is(err, customerr.ErrIndexOutOfRange) {
		return invalidIndexMessage, nil
	}
	if err != nil {
		return tryLaterMessage, errors.Wrap(err, "handle update")
	}
	s.invalidateReports()
	return recordUpdatedMessage, nil
}

func (s *HandlerService) handleReport(ctx context.Context, arg string, _ int64) (string, error) {
	period := strings.TrimSpace(arg)
	if period != reports.PeriodMonthly && period != reports.PeriodWeekly {
		return invalidPeriodMessage, nil
	}
	return s.cached(ctx, "report:"+period, func(ctx context.Context, username string) (string, error) {
		rows, err := s.generator.PeriodReport(ctx, username, period)
		if err != nil {
			return tryLaterMessage, errors.Wrap(err, "handle report")
		}
		if len(rows) == 0 {
			return noRecordsMessage, nil
		}
		return formatPeriodReport(period, rows), nil
	})
}

func (s *HandlerService) handleTotals(ctx context.Context, _ string, _ int64) (string, error) {
	return s.cached(ctx, "totals", func(ctx context.Context, username string) (string, error) {
		income, expense, err := s.generator.Totals(ctx, username)
		if err != nil {
			return tryLaterMessage, errors.Wrap(err, "handle totals")
		}
		return formatTotals(income, expense), nil
	})
}

func (s *HandlerService) handleSavings(ctx context.Context, _ string, _ int64) (string, error) {
	return s.cached(ctx, "savings", func(ctx context.Context, username string) (string, error) {
		savings, err := s.generator.Savings(ctx, username)
		if err != nil {
			return tryLaterMessage, errors.Wrap(err, "handle savings")
		}
		return formatSavings(savings), nil
	})
}

func (s *HandlerService) handleDistribution(ctx context.Context, _ string, _ int64) (string, error) {
	return s.cached(ctx, "distribution", func(ctx context.Context, username string) (string, error) {
		rows, err := s.generator.SpendingDistribution(ctx, username)
		if err != nil {
			return tryLaterMessage, errors.Wrap(err, "handle distribution")
		}
		if len(rows) == 0 {
			return noExpensesMessage, nil
		}
		return formatDistribution(rows), nil
	})
}

// cached gates the report on the session, then serves it from the cache
// when possible. Cache failures only log; the report is computed anyway.
func (s *HandlerService) cached(ctx context.Context, kind string, compute func(ctx context.Context, username string) (string, error)) (string, error) {
	username, err := s.manager.CurrentUsername()
	if errors.Is(err, customerr.ErrAuthRequired) {
		return loginFirstMessage, nil
	}
	if err != nil {
		return tryLaterMessage, err
	}

	if s.cache != nil {
		if report, cacheErr := s.cache.GetReport(username, kind); cacheErr == nil {
			return report, nil
		}
	}

	report, err := compute(ctx, username)
	if err != nil {
		return report, err
	}
	if s.cache != nil {
		if cacheErr := s.cache.CacheReport(username, kind, report); cacheErr != nil {
			logger.Warn("cannot cache report", zap.Error(cacheErr))
		}
	}
	return report, nil
}

func (s *HandlerService) invalidateReports() {
	if s.cache == nil {
		return
	}
	username, err := s.manager.CurrentUsername()
	if err != nil {
		return
	}
	if err := s.cache.InvalidateCache(username, reportKinds); err != nil {
		logger.Warn("cannot invalidate report cache", zap.Error(err))
	}
}
