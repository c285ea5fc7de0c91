package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	attendancev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/attendance/v1"
	employeev1 "github.com/ogurasousui/hrms-lite/internal/adapters/grpc/api/employee/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const usage = `usage: hrmsctl [-addr host:port] [-timeout 5s] <command> [flags]

commands:
  list                                        list employees with attendance history
  add -code C -name N -email E -dept D        register an employee
  mark -employee ID [-date YYYY-MM-DD] -status Present|Absent
                                              record attendance (date defaults to today)
  history -employee ID [-desc]                show attendance history
  delete -employee ID                         delete an employee and their attendance
`

var errUsage = errors.New("invalid usage")

type clients struct {
	employees  employeev1.EmployeeServiceClient
	attendance attendancev1.AttendanceServiceClient
}

func main() {
	var (
		addr    = flag.String("addr", "localhost:50051", "gRPC server address")
		timeout = flag.Duration("timeout", 5*time.Second, "per-request timeout")
	)
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}
	defer conn.Close()

	c := clients{
		employees:  employeev1.NewEmployeeServiceClient(conn),
		attendance: attendancev1.NewAttendanceServiceClient(conn),
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, c, flag.Args(), os.Stdout, time.Now); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		if st, ok := status.FromError(err); ok {
			log.Fatalf("%s: %s", st.Code(), st.Message())
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, c clients, args []string, out io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return listEmployees(ctx, c, out)
	case "add":
		return addEmployee(ctx, c, rest, out)
	case "mark":
		return markAttendance(ctx, c, rest, out, now)
	case "history":
		return showHistory(ctx, c, rest, out)
	case "delete":
		return deleteEmployee(ctx, c, rest, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func listEmployees(ctx context.Context, c clients, out io.Writer) error {
	resp, err := c.employees.ListEmployees(ctx, &emptypb.Empty{})
	if err != nil {
		return err
	}
	if len(resp.Employees) == 0 {
		fmt.Fprintln(out, "no employees")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tEMAIL\tDEPARTMENT\tPRESENT\tABSENT")
	for _, emp := range resp.Employees {
		present, absent := 0, 0
		for _, rec := range emp.AttendanceHistory {
			if rec.Status == "Present" {
				present++
			} else {
				absent++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n", emp.Id, emp.EmployeeCode, emp.FullName, emp.Email, emp.Department, present, absent)
	}
	return w.Flush()
}

func addEmployee(ctx context.Context, c clients, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	code := fs.String("code", "", "employee code")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	dept := fs.String("dept", "", "department")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("add: %v: %w", err, errUsage)
	}

	resp, err := c.employees.CreateEmployee(ctx, &employeev1.CreateEmployeeRequest{
		EmployeeCode: *code,
		FullName:     *name,
		Email:        *email,
		Department:   *dept,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created %s (%s)\n", resp.Employee.EmployeeCode, resp.Employee.Id)
	return nil
}

func markAttendance(ctx context.Context, c clients, args []string, out io.Writer, now func() time.Time) error {
	fs := flag.NewFlagSet("mark", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	employeeID := fs.String("employee", "", "employee id")
	date := fs.String("date", "", "calendar date YYYY-MM-DD (defaults to today in the local timezone)")
	st := fs.String("status", "", "Present or Absent")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("mark: %v: %w", err, errUsage)
	}

	day := strings.TrimSpace(*date)
	if day == "" {
		day = today(now())
	}

	resp, err := c.attendance.MarkAttendance(ctx, &attendancev1.MarkAttendanceRequest{
		EmployeeId: *employeeID,
		Date:       day,
		Status:     *st,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "marked %s %s\n", resp.Record.Date, resp.Record.Status)
	return nil
}

func showHistory(ctx context.Context, c clients, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	employeeID := fs.String("employee", "", "employee id")
	desc := fs.Bool("desc", false, "newest first")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("history: %v: %w", err, errUsage)
	}

	resp, err := c.attendance.GetHistory(ctx, &attendancev1.GetHistoryRequest{EmployeeId: *employeeID, Descending: *desc})
	if err != nil {
		return err
	}
	if len(resp.Records) == 0 {
		fmt.Fprintln(out, "no attendance records")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSTATUS")
	for _, rec := range resp.Records {
		fmt.Fprintf(w, "%s\t%s\n", rec.Date, rec.Status)
	}
	return w.Flush()
}

func deleteEmployee(ctx context.Context, c clients, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	employeeID := fs.String("employee", "", "employee id")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("delete: %v: %w", err, errUsage)
	}

	if _, err := c.employees.DeleteEmployee(ctx, &employeev1.DeleteEmployeeRequest{Id: *employeeID}); err != nil {
		return err
	}

	fmt.Fprintf(out, "deleted %s\n", *employeeID)
	return nil
}

// today は t のローカルタイムゾーンでの暦日を返します。
func today(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
