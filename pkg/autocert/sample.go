package autocert

const (
	ParticipantTemplateFileName = "participant_template.csv"
	StudentTemplateFileName     = "students_template.csv"
)

// ParticipantTemplateCSV is the downloadable skeleton for participant uploads.
const ParticipantTemplateCSV = "name,event,date,email,position,category\n" +
	"John Doe,Annual Conference 2024,2024-08-14,john@email.com,Attendee,participation\n" +
	"Jane Smith,Annual Conference 2024,2024-08-14,jane@email.com,Speaker,merit\n" +
	"Mike Johnson,Annual Conference 2024,2024-08-14,mike@email.com,Volunteer,excellence\n" +
	"Sarah Wilson,Annual Conference 2024,2024-08-14,sarah@email.com,Organizer,outstanding"

// StudentTemplateCSV is the downloadable skeleton for student bulk uploads.
const StudentTemplateCSV = "name,rollNumber,email,phone,course,year,section\n" +
	"John Doe,2021001,john@student.edu,+1234567890,Computer Science,3rd Year,A\n" +
	"Jane Smith,2021002,jane@student.edu,+1234567891,Electronics,2nd Year,B\n" +
	"Mike Johnson,2021003,mike@student.edu,+1234567892,Mechanical,1st Year,C"
