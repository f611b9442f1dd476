package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/internal/repository"
	"github.com/noah-isme/campus-records-api/internal/service"
	"github.com/noah-isme/campus-records-api/pkg/config"
	"github.com/noah-isme/campus-records-api/pkg/export"
	"github.com/noah-isme/campus-records-api/pkg/storage"
)

// registrarCLI is the interactive console front-end. It owns no business
// rules; every choice maps onto one service call.
type registrarCLI struct {
	in          *bufio.Scanner
	students    *service.StudentService
	courses     *service.CourseService
	instructors *service.InstructorService
	registrar   *service.RegistrarService
	analytics   *service.AnalyticsService
	importer    *service.ImportService
	exporter    *service.ExportService
	backups     *service.BackupService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.Dirs.Data)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	if err := store.EnsureTree("exports", "backups", "imports"); err != nil {
		log.Fatalf("storage tree failed: %v", err)
	}

	students := repository.NewStudentStore()
	courses := repository.NewCourseStore()
	instructors := repository.NewInstructorStore()
	enrollments := repository.NewEnrollmentStore()

	validate := validator.New()
	logr := zap.NewNop()
	metrics := service.NewMetricsService()

	studentSvc := service.NewStudentService(students, courses, cfg.Registrar, validate, logr)
	courseSvc := service.NewCourseService(courses, instructors, validate, logr)
	instructorSvc := service.NewInstructorService(instructors, validate, logr)

	cli := &registrarCLI{
		in:          bufio.NewScanner(os.Stdin),
		students:    studentSvc,
		courses:     courseSvc,
		instructors: instructorSvc,
		registrar:   service.NewRegistrarService(students, courses, enrollments, cfg.Registrar, logr),
		analytics:   service.NewAnalyticsService(studentSvc, courseSvc, instructorSvc, enrollments, logr),
		importer:    service.NewImportService(students, courses, export.NewCSVExporter(), metrics, logr),
		exporter:    service.NewExportService(students, courses, enrollments, store, logr),
		backups:     service.NewBackupService(store, cfg.Dirs.Data, cfg.Backup, metrics, logr),
	}
	cli.run()
}

func (cli *registrarCLI) run() {
	ctx := context.Background()
	for {
		fmt.Println()
		fmt.Println("===== CAMPUS RECORDS MANAGER =====")
		fmt.Println("1. Register student")
		fmt.Println("2. Create course")
		fmt.Println("3. Enroll student in course")
		fmt.Println("4. Record marks")
		fmt.Println("5. Drop enrollment")
		fmt.Println("6. Show transcript")
		fmt.Println("7. Course catalog")
		fmt.Println("8. Student statistics")
		fmt.Println("9. Institution report")
		fmt.Println("10. Import students from CSV")
		fmt.Println("11. Export snapshot")
		fmt.Println("12. Create backup")
		fmt.Println("13. List backups")
		fmt.Println("0. Exit")

		switch cli.prompt("Choice") {
		case "1":
			cli.registerStudent(ctx)
		case "2":
			cli.createCourse(ctx)
		case "3":
			cli.enroll(ctx)
		case "4":
			cli.recordMarks(ctx)
		case "5":
			cli.drop(ctx)
		case "6":
			cli.transcript(ctx)
		case "7":
			fmt.Print(cli.courses.Catalog(ctx))
		case "8":
			fmt.Print(cli.students.StatsSummary(ctx))
		case "9":
			fmt.Print(cli.analytics.Report(ctx))
		case "10":
			cli.importStudents(ctx)
		case "11":
			cli.exportSnapshot(ctx)
		case "12":
			cli.createBackup(ctx)
		case "13":
			cli.listBackups(ctx)
		case "0":
			fmt.Println("Goodbye.")
			return
		default:
			fmt.Println("Unknown choice.")
		}
	}
}

func (cli *registrarCLI) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !cli.in.Scan() {
		return "0"
	}
	return strings.TrimSpace(cli.in.Text())
}

func (cli *registrarCLI) registerStudent(ctx context.Context) {
	req := service.CreateStudentRequest{
		ID:                 cli.prompt("Student ID"),
		RegistrationNumber: cli.prompt("Registration number"),
		Email:              cli.prompt("Email"),
		Department:         cli.prompt("Department"),
	}
	req.Name.First = cli.prompt("First name")
	req.Name.Last = cli.prompt("Last name")

	dob, err := time.Parse("2006-01-02", cli.prompt("Date of birth (YYYY-MM-DD)"))
	if err != nil {
		fmt.Println("Invalid date:", err)
		return
	}
	req.DateOfBirth = dob

	student, err := cli.students.Create(ctx, req)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Registered:", student.Summary())
}

func (cli *registrarCLI) createCourse(ctx context.Context) {
	number, err := strconv.Atoi(cli.prompt("Course number"))
	if err != nil {
		fmt.Println("Invalid number:", err)
		return
	}
	credits, err := strconv.Atoi(cli.prompt("Credits (1-6)"))
	if err != nil {
		fmt.Println("Invalid credits:", err)
		return
	}
	req := service.CreateCourseRequest{
		Department: cli.prompt("Department"),
		Number:     number,
		Section:    cli.prompt("Section"),
		Title:      cli.prompt("Title"),
		Credits:    credits,
		Semester:   cli.prompt("Semester (SPRING/SUMMER/FALL/WINTER)"),
	}
	course, err := cli.courses.Create(ctx, req)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Created course:", course.Code.String())
}

func (cli *registrarCLI) enroll(ctx context.Context) {
	record, err := cli.registrar.Enroll(ctx, cli.prompt("Student ID"), cli.prompt("Course code"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Enrolled. Record id:", record.ID)
}

func (cli *registrarCLI) recordMarks(ctx context.Context) {
	studentID := cli.prompt("Student ID")
	courseCode := cli.prompt("Course code")
	marks, err := strconv.ParseFloat(cli.prompt("Marks (0-100)"), 64)
	if err != nil {
		fmt.Println("Invalid marks:", err)
		return
	}
	record, err := cli.registrar.Grade(ctx, studentID, courseCode, marks)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Recorded %.1f -> %s\n", record.Marks, record.Grade)
}

func (cli *registrarCLI) drop(ctx context.Context) {
	if err := cli.registrar.Drop(ctx, cli.prompt("Student ID"), cli.prompt("Course code")); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Dropped.")
}

func (cli *registrarCLI) transcript(ctx context.Context) {
	transcript, err := cli.students.Transcript(ctx, cli.prompt("Student ID"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(transcript)
}

func (cli *registrarCLI) importStudents(ctx context.Context) {
	raw, err := os.ReadFile(cli.prompt("CSV path"))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	report, err := cli.importer.ImportStudents(ctx, raw)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Imported %d of %d rows (%d skipped)\n", report.Imported, report.Total, report.Skipped)
	for _, e := range report.Errors {
		fmt.Println("  -", e)
	}
}

func (cli *registrarCLI) exportSnapshot(ctx context.Context) {
	result, err := cli.exporter.Snapshot(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Exported %d students, %d courses, %d records to %s\n",
		result.Students, result.Courses, result.Records, result.Directory)
}

func (cli *registrarCLI) createBackup(ctx context.Context) {
	result, err := cli.backups.Create(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Backup %s (%d files, %d bytes)\n", result.Name, result.Files, result.Size)
}

func (cli *registrarCLI) listBackups(ctx context.Context) {
	files, err := cli.backups.List(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(files) == 0 {
		fmt.Println("No backups yet.")
		return
	}
	for _, f := range files {
		fmt.Printf("%-50s %10d bytes  %s\n", f.Name, f.Size, f.ModTime.Format("2006-01-02 15:04"))
	}
	total, err := cli.backups.TotalSize(ctx)
	if err == nil {
		fmt.Printf("Total: %d bytes\n", total)
	}
}
