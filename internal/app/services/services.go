package services

// Services defined in this package:
// - AuthService: back-office login, token refresh and pre-registration completion
// - StudentService: enrollment CRUD, photo uploads and batch pre-registration
// - CourseService: course catalog CRUD with delete protection
// - ProfessorService: instructor CRUD and signature uploads
// - CourseHoursService: workload lookup values
// - CertificateService: certificate generation, deletion, batch runs and public verification
// - LeadService: marketing lead capture and listing
// - SettingsService: white-label configuration
